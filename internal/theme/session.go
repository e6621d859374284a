package theme

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// SessionKey is the session slot holding the preference.
const SessionKey = "theme"

// SessionStore persists the preference in the scs session of the request
// carried by ctx. The session middleware must wrap the handler.
type SessionStore struct {
	sessions *scs.SessionManager
}

// NewSessionStore creates a SessionStore.
func NewSessionStore(sm *scs.SessionManager) *SessionStore {
	return &SessionStore{sessions: sm}
}

// Load returns the stored theme. Values other than "light" or "dark" count
// as absent.
func (s *SessionStore) Load(ctx context.Context) (Theme, bool, error) {
	t, ok := Parse(s.sessions.GetString(ctx, SessionKey))
	return t, ok, nil
}

// Save writes the theme into the session.
func (s *SessionStore) Save(ctx context.Context, t Theme) error {
	s.sessions.Put(ctx, SessionKey, string(t))
	return nil
}
