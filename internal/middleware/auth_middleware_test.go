package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/pkg/jwt"
)

func setupTestJWTService() *jwt.Service {
	return jwt.NewService(
		"test-access-secret-key-123456789",
		"test-refresh-secret-key-123456789",
		time.Hour,
		24*time.Hour,
	)
}

func protectedRouter(jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chain := append([]gin.HandlerFunc{AuthMiddleware(jwtService)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		userCtx, exists := GetUserContext(c)
		if !exists {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id": userCtx.UserID,
			"email":   userCtx.Email,
			"role":    userCtx.Role,
		})
	})
	router.GET("/protected", chain...)
	return router
}

func TestAuthMiddleware_Success(t *testing.T) {
	jwtService := setupTestJWTService()
	router := protectedRouter(jwtService)

	token, err := jwtService.GenerateAccessToken(uuid.New(), "ana@example.com", "client")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := protectedRouter(setupTestJWTService())

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_AUTH_HEADER")
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	router := protectedRouter(setupTestJWTService())

	for _, header := range []string{"sometoken", "Basic abc", "Bearer "} {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := protectedRouter(setupTestJWTService())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestAuthMiddleware_WrongTokenType(t *testing.T) {
	jwtService := setupTestJWTService()
	router := protectedRouter(jwtService)

	// A refresh token must not open protected routes.
	refresh, err := jwtService.GenerateRefreshToken(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := setupTestJWTService()
	router := protectedRouter(jwtService, RequireRole(string(models.RoleAdministrator)))

	t.Run("AdministratorAllowed", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "admin@example.com", "administrator")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ClientForbidden", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "ana@example.com", "client")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "INSUFFICIENT_PERMISSIONS")
	})
}

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("BuildsUserFromContext", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		id := uuid.New()
		c.Set(UserContextKey, UserContext{UserID: id, Email: "ana@example.com", Role: "client"})

		user, ok := CurrentUser(c)
		require.True(t, ok)
		assert.Equal(t, id.String(), user.ID)
		assert.Equal(t, models.RoleClient, user.Role)
	})

	t.Run("RejectsUnknownRole", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(UserContextKey, UserContext{UserID: uuid.New(), Email: "x@example.com", Role: "superuser"})

		_, ok := CurrentUser(c)
		assert.False(t, ok)
	})

	t.Run("MissingContext", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		_, ok := CurrentUser(c)
		assert.False(t, ok)
	})
}
