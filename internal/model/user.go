package model

// User is the authenticated platform user.
type User struct {
	ID        int      `json:"id"`
	Nombre    string   `json:"nombre"`
	Email     string   `json:"email"`
	Telefono  string   `json:"telefono"`
	Cedula    string   `json:"cedula,omitempty"`
	Bloqueado BoolFlag `json:"bloqueado"`
	RoleID    int      `json:"role_id"`
	Role      Role     `json:"role"`

	// Barbero is present only for barber accounts and carries the barber's
	// own resource id, distinct from the user id. Appointment assignment
	// matches on Barbero.ID, never on User.ID.
	Barbero *BarberoProfile `json:"barbero,omitempty"`
}

// RoleName returns the user's role from the closed set.
func (u *User) RoleName() RoleName {
	if u == nil {
		return RoleUnknown
	}
	return u.Role.Nombre
}

// BarberoID returns the barber resource id, or 0 when the user has no
// barber profile.
func (u *User) BarberoID() int {
	if u == nil || u.Barbero == nil {
		return 0
	}
	return u.Barbero.ID
}

// BarberoProfile is the barber record embedded in a user payload.
type BarberoProfile struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	BarberiaID int    `json:"barberia_id"`
	FotoURL    string `json:"foto_url,omitempty"`
	Biografia  string `json:"biografia,omitempty"`
	Estado     string `json:"estado"`
}
