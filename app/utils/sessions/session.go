package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "storefront-session"

	sessionIDKey = "sessionID"
	userIDKey    = "userID"
	mirrorKey    = "cartMirror"
)

// SessionStore correlates a shopper (anonymous or logged in) with exactly
// one opaque session id, which in turn identifies at most one cart. It also
// carries the serialized client cart mirror so the UI can render optimistic
// cart state without a database round trip.
type SessionStore interface {
	SessionID(w http.ResponseWriter, r *http.Request) (string, error)

	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error

	LoadMirror(r *http.Request) string
	SaveMirror(w http.ResponseWriter, r *http.Request, encoded string) error

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// A decode failure yields a fresh session; log and move on.
		log.Printf("Error getting session: %v", err)
	}
	return session
}

// SessionID returns the shopper's session id, minting and persisting a new
// one on first touch.
func (c *CookieSessionStore) SessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	session := c.getSession(r)

	if id, ok := session.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.New().String()
	session.Values[sessionIDKey] = id
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	session := c.getSession(r)
	userID, ok := session.Values[userIDKey].(string)
	if !ok {
		return ""
	}
	return userID
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session := c.getSession(r)
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

func (c *CookieSessionStore) LoadMirror(r *http.Request) string {
	session := c.getSession(r)
	encoded, ok := session.Values[mirrorKey].(string)
	if !ok {
		return ""
	}
	return encoded
}

func (c *CookieSessionStore) SaveMirror(w http.ResponseWriter, r *http.Request, encoded string) error {
	session := c.getSession(r)
	session.Values[mirrorKey] = encoded
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
