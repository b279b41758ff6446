// Package session holds the signed-in user for a client process.
package session

import (
	"sync"
	"time"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User is the identity returned by login and registration.
type User struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	NomorHp   string    `json:"nomorHp"`
	Jurusan   string    `json:"jurusan"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is safe for concurrent use. The zero value is signed out.
type Session struct {
	mu    sync.RWMutex
	user  *User
	token string
}

func New() *Session {
	return &Session{}
}

func (s *Session) Login(u User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	s.token = token
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Email returns the signed-in email, or "" when signed out.
func (s *Session) Email() string {
	u, _ := s.User()
	return u.Email
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}
