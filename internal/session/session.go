// Package session holds the authenticated user for the running client:
// populated at login or restored from local storage at startup, cleared
// at logout. The normalized role decides which top-level screen set is
// routed to; it is a routing decision only, the backend stays the
// authority on permissions.
package session

import (
	"encoding/json"
	"log/slog"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/cart"
	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/localstore"
)

// Storage keys kept compatible with what old app builds wrote.
const (
	UserKey  = "userData"
	TokenKey = "authToken"
)

type persistedUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

type Session struct {
	kv      localstore.KV
	persist *localstore.Writer
	log     *slog.Logger

	user          domain.User
	token         string
	authenticated bool
}

func New(kv localstore.KV, persist *localstore.Writer, log *slog.Logger) *Session {
	return &Session{kv: kv, persist: persist, log: log}
}

// Restore loads a previously persisted session. A missing, malformed or
// unknown-role blob leaves the session logged out; storage trouble is
// logged only.
func (s *Session) Restore() {
	raw, err := s.kv.Get(UserKey)
	if err != nil {
		if err != localstore.ErrNotFound && s.log != nil {
			s.log.Warn("session restore failed", "error", err)
		}
		return
	}
	var pu persistedUser
	if err := json.Unmarshal(raw, &pu); err != nil {
		if s.log != nil {
			s.log.Warn("session blob malformed, staying logged out", "error", err)
		}
		return
	}
	role, err := domain.ParseRole(pu.Role)
	if err != nil {
		if s.log != nil {
			s.log.Warn("session blob carries unknown role, staying logged out", "role", pu.Role)
		}
		return
	}
	token := ""
	if tb, err := s.kv.Get(TokenKey); err == nil {
		token = string(tb)
	}
	s.user = domain.User{
		ID:         pu.ID,
		Name:       pu.Name,
		Email:      pu.Email,
		Phone:      pu.Phone,
		Role:       role,
		IsVerified: pu.IsVerified,
	}
	s.token = token
	s.authenticated = true
}

// Login installs the user and token and schedules their persistence.
func (s *Session) Login(user domain.User, token string) {
	s.user = user
	s.token = token
	s.authenticated = true
	s.save()
}

// Logout clears session and cart in one synchronous step, so no caller
// ever observes one cleared without the other, then schedules the
// storage removals.
func (s *Session) Logout(c *cart.Cart) {
	s.user = domain.User{}
	s.token = ""
	s.authenticated = false
	if c != nil {
		c.Clear()
	}
	if s.persist != nil {
		s.persist.Schedule(UserKey, nil)
		s.persist.Schedule(TokenKey, nil)
	}
}

func (s *Session) User() (domain.User, bool) {
	return s.user, s.authenticated
}

func (s *Session) Token() string { return s.token }

func (s *Session) Authenticated() bool { return s.authenticated }

// Admin reports whether the admin screen set should be routed to.
func (s *Session) Admin() bool {
	return s.authenticated && s.user.Role == domain.RoleAdmin
}

func (s *Session) save() {
	if s.persist == nil {
		return
	}
	pu := persistedUser{
		ID:         s.user.ID,
		Name:       s.user.Name,
		Email:      s.user.Email,
		Phone:      s.user.Phone,
		Role:       string(s.user.Role),
		IsVerified: s.user.IsVerified,
	}
	b, err := json.Marshal(pu)
	if err != nil {
		if s.log != nil {
			s.log.Warn("session marshal failed", "error", err)
		}
		return
	}
	s.persist.Schedule(UserKey, b)
	s.persist.Schedule(TokenKey, []byte(s.token))
}
