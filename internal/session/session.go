// Package session keeps the logged-in user in a server-side session
// referenced by an opaque cookie.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	// CookieName is the cookie carrying the session id.
	CookieName = "fittrack_sid"
	// Expiration is the lifetime of a session and its cookie.
	Expiration = 7 * 24 * time.Hour

	keyUserID   = "userId"
	keyUsername = "username"
)

// ErrNoSession is returned when the request carries no authenticated session.
var ErrNoSession = errors.New("no authenticated session")

// Options tunes the session cookie.
type Options struct {
	// Secure restricts the cookie to HTTPS; set in production.
	Secure bool
}

// Manager binds users to sessions.
type Manager struct {
	store *fibersession.Store
}

// NewManager creates a Manager. A nil storage keeps sessions in process memory.
func NewManager(opts Options, storage fiber.Storage) *Manager {
	store := fibersession.New(fibersession.Config{
		Expiration:     Expiration,
		Storage:        storage,
		KeyLookup:      "cookie:" + CookieName,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   opts.Secure,
	})
	return &Manager{store: store}
}

// Establish starts a fresh session for the user. The session id is always
// regenerated so an id issued before login is never reused.
func (m *Manager) Establish(c *fiber.Ctx, userID uint, username string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	sess.Set(keyUserID, userID)
	sess.Set(keyUsername, username)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// UserID returns the user bound to the request's session, or ErrNoSession.
func (m *Manager) UserID(c *fiber.Ctx) (uint, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return 0, fmt.Errorf("failed to load session: %w", err)
	}
	id, ok := sess.Get(keyUserID).(uint)
	if !ok || id == 0 {
		return 0, ErrNoSession
	}
	return id, nil
}

// Destroy deletes the session and expires its cookie.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
