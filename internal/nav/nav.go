// Package nav decides which navigation links a role sees and whether a
// session may enter a route. Menu visibility and route access are
// independent checks: hiding a link never substitutes for a guard.
package nav

import "github.com/barberpro/barberpro-client/internal/model"

// Link is one navigation entry.
type Link struct {
	Label string
	Path  string
}

var (
	linkDashboard = Link{Label: "Dashboard", Path: "/dashboard"}
	linkCitas     = Link{Label: "Citas", Path: "/citas"}
	linkServicios = Link{Label: "Servicios", Path: "/servicios"}
	linkBarberos  = Link{Label: "Barberos", Path: "/barberos"}
	linkPerfil    = Link{Label: "Perfil", Path: "/perfil"}
)

// LinksFor returns the fixed menu for a role. Unknown roles get an
// empty menu, never a default one.
func LinksFor(role model.RoleName) []Link {
	switch role {
	case model.RoleDueno:
		return []Link{linkDashboard, linkCitas, linkServicios, linkBarberos, linkPerfil}
	case model.RoleAdmin:
		return []Link{linkDashboard, linkPerfil}
	case model.RoleBarbero, model.RoleCliente:
		return []Link{linkDashboard, linkCitas, linkServicios, linkPerfil}
	default:
		return nil
	}
}

// Decision is the outcome of a route guard check.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// SessionInfo is the slice of session state the guard needs.
type SessionInfo interface {
	IsAuthenticated() bool
	Role() model.RoleName
}

// Guard checks a route that requires authentication and, when
// allowedRoles is non-empty, one of those roles. Anonymous users are
// sent to login; authenticated users with the wrong role are sent to
// the unauthorized page.
func Guard(session SessionInfo, allowedRoles ...model.RoleName) Decision {
	if session == nil || !session.IsAuthenticated() {
		return RedirectLogin
	}
	if len(allowedRoles) == 0 {
		return Allow
	}
	role := session.Role()
	for _, allowed := range allowedRoles {
		if role == allowed {
			return Allow
		}
	}
	return RedirectUnauthorized
}
