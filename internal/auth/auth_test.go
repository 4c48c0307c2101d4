package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardofontes/goalvault/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, true, time.Now())
	require.NoError(t, err)

	gotID, admin, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.True(t, admin)
}

func TestParseToken_Invalid(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, _, err := svc.ParseToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := auth.NewService("other-secret", time.Hour)

		token, err := other.GenerateToken(uuid.New(), false, time.Now())
		require.NoError(t, err)

		_, _, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), false, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)

		_, _, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestMiddleware(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)
	userID := uuid.New()

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, id)
		assert.False(t, auth.IsAdmin(r.Context()))

		w.WriteHeader(http.StatusOK)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, false, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		svc.Middleware(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		svc.Middleware(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	handler := svc.Middleware(auth.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("AdminAllowed", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), true, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), false, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
