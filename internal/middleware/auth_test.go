package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
}

func (s stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("token is malformed")
	}
	return s.claims, nil
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	r := gin.New()
	r.GET("/me", AuthMiddleware(stubValidator{claims: &types.TokenClaims{UserID: userID, Username: "cook"}}), func(c *gin.Context) {
		id, ok := UserID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id, "username": c.GetString(UsernameKey)})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
		{"lower case scheme", "bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestUserID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)

	c.Set(UserIDKey, "not-a-uuid")
	_, ok = UserID(c)
	assert.False(t, ok)
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	r := gin.New()
	r.GET("/recipes", OptionalAuth(stubValidator{claims: &types.TokenClaims{UserID: userID}}), func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "id": id})
	})

	for header, authenticated := range map[string]bool{
		"":            false,
		"Bearer bad":  false,
		"Basic good":  false,
		"Bearer good": true,
	} {
		req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Contains(t, w.Body.String(), fmt.Sprintf(`"authenticated":%t`, authenticated), header)
	}
}

type stubAdmins struct {
	admins map[uuid.UUID]bool
	err    error
}

func (s stubAdmins) IsAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	return s.admins[userID], s.err
}

func TestRequireAdmin(t *testing.T) {
	admin, cook := uuid.New(), uuid.New()

	route := func(userID uuid.UUID, checker AdminChecker) *gin.Engine {
		r := gin.New()
		r.GET("/admin/stats", func(c *gin.Context) {
			if userID != uuid.Nil {
				c.Set(UserIDKey, userID)
			}
			c.Next()
		}, RequireAdmin(checker), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}
	checker := stubAdmins{admins: map[uuid.UUID]bool{admin: true}}

	tests := []struct {
		name    string
		userID  uuid.UUID
		checker AdminChecker
		status  int
	}{
		{"admin", admin, checker, http.StatusOK},
		{"regular user", cook, checker, http.StatusForbidden},
		{"anonymous", uuid.Nil, checker, http.StatusUnauthorized},
		{"lookup failure", admin, stubAdmins{err: errors.New("connection refused")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(route(tt.userID, tt.checker), httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
