package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendita/storefront/app/utils/cartmirror"
)

// stubSessionStore serves a fixed mirror without cookies or a database.
type stubSessionStore struct {
	mirror string
}

func (s *stubSessionStore) SessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	return "stub-session", nil
}
func (s *stubSessionStore) GetUserID(r *http.Request) string { return "" }
func (s *stubSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	return nil
}
func (s *stubSessionStore) LoadMirror(r *http.Request) string { return s.mirror }
func (s *stubSessionStore) SaveMirror(w http.ResponseWriter, r *http.Request, encoded string) error {
	s.mirror = encoded
	return nil
}
func (s *stubSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error { return nil }

func TestCartCountMiddleware(t *testing.T) {
	mirror := cartmirror.Mirror{}.
		Add(cartmirror.Item{VariantID: "v1", Quantity: 2}).
		Add(cartmirror.Item{VariantID: "v2", Quantity: 1})
	encoded, err := mirror.Encode()
	require.NoError(t, err)

	var seen int
	handler := CartCountMiddleware(&stubSessionStore{mirror: encoded})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = CartCountFromContext(r.Context())
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 3, seen)
}

func TestCartCountMiddlewareGarbageMirror(t *testing.T) {
	var seen int
	handler := CartCountMiddleware(&stubSessionStore{mirror: "{not json"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = CartCountFromContext(r.Context())
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Zero(t, seen)
}

func TestCartCountFromContextMissing(t *testing.T) {
	assert.Zero(t, CartCountFromContext(context.Background()))
}
