package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/internal/service"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

type validatorStub struct {
	claims *models.JWTClaims
}

func (v validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return v.claims, nil
}

func protectedRouter(claims *models.JWTClaims, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/calendar/config/:userId", JWT(validatorStub{claims: claims}), guard, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func serve(router *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAndRBAC(t *testing.T) {
	provider := &models.JWTClaims{UserID: "provider-1", Role: models.RoleProvider}
	router := protectedRouter(provider, RBAC(string(models.RoleAdmin), RoleSelf))

	assert.Equal(t, http.StatusUnauthorized, serve(router, "/calendar/config/provider-1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, "/calendar/config/provider-1", "Token good").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, "/calendar/config/provider-1", "Bearer bad").Code)
	assert.Equal(t, http.StatusNoContent, serve(router, "/calendar/config/provider-1", "Bearer good").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, "/calendar/config/provider-2", "Bearer good").Code)

	admin := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	adminRouter := protectedRouter(admin, RBAC(string(models.RoleAdmin), RoleSelf))
	assert.Equal(t, http.StatusNoContent, serve(adminRouter, "/calendar/config/provider-2", "Bearer good").Code)
}

func TestRequireRoles(t *testing.T) {
	other := &models.JWTClaims{UserID: "x", Role: models.UserRole("CLIENT")}
	router := protectedRouter(other, RequireRoles(models.RoleAdmin, models.RoleProvider))
	assert.Equal(t, http.StatusForbidden, serve(router, "/calendar/config/x", "Bearer good").Code)
}

type acquirerStub struct {
	sessions map[string]*service.Session
}

func (a *acquirerStub) Acquire(id string) (*service.Session, bool) {
	if s, ok := a.sessions[id]; ok {
		return s, false
	}
	s := &service.Session{ID: "issued-id", Notifications: service.NewNotificationQueue()}
	a.sessions[s.ID] = s
	return s, true
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &acquirerStub{sessions: map[string]*service.Session{}}
	router := gin.New()
	router.Use(WithResponseMeta(), Session(store))
	router.GET("/", func(c *gin.Context) {
		session := MustSession(c)
		c.JSON(http.StatusOK, gin.H{"id": session.ID, "meta": ExtractMeta(c)["session_id"]})
	})

	rec := serve(router, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "issued-id", rec.Header().Get(SessionHeader))
	assert.JSONEq(t, `{"id":"issued-id","meta":"issued-id"}`, rec.Body.String())
}

func TestMustSessionPanicsWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Panics(t, func() { MustSession(c) })
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(NewRateLimiterStore(1, 2)))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(router, "/", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(router, "/", "").Code)
	limited := serve(router, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))
}

func TestMetricsMiddlewareRecordsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/slots/:date", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, "/slots/2024-06-11", "")
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `path="/slots/:date"`)
}

func TestMetricsMiddlewareLabelsSurfaceAndUnmatched(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/slots/:date", func(c *gin.Context) {
		c.Set(ContextSessionKey, &service.Session{ID: "s-1"})
		c.Status(http.StatusOK)
	})
	router.GET("/calendar/special-dates", func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
		c.Status(http.StatusOK)
	})

	serve(router, "/slots/2024-06-11", "")
	serve(router, "/calendar/special-dates", "")
	serve(router, "/wp-login.php", "")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `path="/slots/:date",status="200",surface="booking"`)
	assert.Contains(t, body, `path="/calendar/special-dates",status="200",surface="admin"`)
	assert.Contains(t, body, `path="unmatched",status="404",surface="public"`)
	assert.NotContains(t, body, "wp-login")
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}
