package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/lcamargo/darkroom/internal/api"
)

const defaultSessionPath = "~/.config/darkroom/session.toml"

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

type fileState struct {
	Token string `toml:"token"`
	User  struct {
		ID       int64  `toml:"id"`
		Username string `toml:"username"`
		Name     string `toml:"name"`
		Email    string `toml:"email"`
	} `toml:"user"`
}

// Session is the single process-wide auth state: the admin bearer token
// and the user it belongs to, persisted across runs. It is constructed
// once at startup and passed to everything that needs the credential, so
// no other code touches the session file.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
	user  api.User
}

// Load reads the stored session from path, falling back to an empty
// (logged-out) session when the file is missing or unreadable.
func Load(path string) *Session {
	s := &Session{path: path}
	resolved, err := resolvePath(path)
	if err != nil {
		return s
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return s
	}
	var saved fileState
	if err := toml.Unmarshal(raw, &saved); err != nil {
		return s
	}
	s.token = strings.TrimSpace(saved.Token)
	s.user = api.User{
		ID:       saved.User.ID,
		Username: saved.User.Username,
		Name:     saved.User.Name,
		Email:    saved.User.Email,
	}
	return s
}

// Token returns the stored bearer token, empty when logged out.
// Implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the stored admin user and whether one is present.
func (s *Session) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

// LoggedIn reports whether a token is stored. Admin screens are gated on
// this; they redirect to the login screen when it is false.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// SaveLogin stores the credentials from a successful login and persists
// them. A persistence failure leaves the in-memory session logged in so
// the current run keeps working.
func (s *Session) SaveLogin(token string, user api.User) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return s.persist()
}

// Logout clears the credentials and removes the session file.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.user = api.User{}
	s.mu.Unlock()

	resolved, err := resolvePath(s.path)
	if err != nil {
		return nil
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// ExpiresAt peeks at the token's exp claim without verifying the
// signature. Verification belongs to the server; this only lets the UI
// flag an expired session before burning a request on a 401.
func (s *Session) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens that are opaque or carry no expiry are never considered expired
// locally.
func (s *Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return exp.Before(now)
}

func (s *Session) persist() error {
	resolved, err := resolvePath(s.path)
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}

	s.mu.RLock()
	var saved fileState
	saved.Token = s.token
	saved.User.ID = s.user.ID
	saved.User.Username = s.user.Username
	saved.User.Name = s.user.Name
	saved.User.Email = s.user.Email
	s.mu.RUnlock()

	raw, err := toml.Marshal(saved)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	// The file holds a live credential.
	if err := os.WriteFile(resolved, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultSessionPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
