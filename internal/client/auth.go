package client

import (
	"context"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// AuthClient talks to the auth endpoints. Role strings coming back from
// the backend are normalized to the closed enum here, at session load,
// and never re-compared downstream.
type AuthClient struct {
	c        *Client
	currency string
}

func NewAuthClient(c *Client, currency string) *AuthClient {
	return &AuthClient{c: c, currency: currency}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type authResponse struct {
	User  wireUser `json:"user"`
	Token string   `json:"token"`
}

// LoginResult is the normalized user plus the session token to persist.
type LoginResult struct {
	User  domain.User
	Token string
}

func (a *AuthClient) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var resp authResponse
	if err := a.c.do(ctx, "POST", "/api/auth/login", creds, &resp); err != nil {
		return LoginResult{}, err
	}
	return a.result(resp)
}

func (a *AuthClient) Signup(ctx context.Context, in SignupInput) (LoginResult, error) {
	var resp authResponse
	if err := a.c.do(ctx, "POST", "/api/auth/signup", in, &resp); err != nil {
		return LoginResult{}, err
	}
	return a.result(resp)
}

func (a *AuthClient) result(resp authResponse) (LoginResult, error) {
	u, err := resp.User.toDomain(a.currency)
	if err != nil {
		return LoginResult{}, &CollaboratorError{Status: 200, Message: "backend returned unknown role"}
	}
	return LoginResult{User: u, Token: resp.Token}, nil
}
