package api

import (
	"context"
	"fmt"

	"github.com/barberpro/barberpro-client/internal/model"
)

// AuthResponse is the normalized result of login or register.
type AuthResponse struct {
	Token string
	User  *model.User
}

// authEnvelope tolerates the backend's inconsistent field naming:
// /login responds with access_token, /register with token.
type authEnvelope struct {
	AccessToken string      `json:"access_token"`
	Token       string      `json:"token"`
	User        *model.User `json:"user"`
}

func (e authEnvelope) normalize() (*AuthResponse, error) {
	token := e.AccessToken
	if token == "" {
		token = e.Token
	}
	if token == "" || e.User == nil {
		return nil, fmt.Errorf("api: auth response missing token or user")
	}
	return &AuthResponse{Token: token, User: e.User}, nil
}

// Login authenticates with email/password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var envelope authEnvelope
	err := c.Post(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.normalize()
}

// RegisterInput creates a new client account.
type RegisterInput struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Password string `json:"password"`
}

// Register creates an account and returns the fresh session credentials.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var envelope authEnvelope
	if err := c.Post(ctx, "/register", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.normalize()
}
