//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"envelope-ledger/internal/domain/user"
	"envelope-ledger/internal/handler/middleware"
	"envelope-ledger/internal/pkg/jwt"
	"envelope-ledger/tests/common/httptest"
	usecasemock "envelope-ledger/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockValidator *usecasemock.MockTokenValidator
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)
	auth := middleware.NewAuthMiddleware(s.mockValidator)

	whoami := func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		s.Require().True(ok)
		userID, ok := middleware.GetUserID(c)
		s.Require().True(ok)
		s.Equal(actor.ID(), userID)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID().String(), "role": actor.Role().String()})
	}

	s.router.GET("/me", auth.RequireAuth(), whoami)
	s.router.GET("/admin", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleAdmin), whoami)
	s.router.GET("/misconfigured", auth.RequireRoleAtLeast(user.RoleAdmin), whoami)
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("success: actor from bearer token", func() {
		actor := user.NewActor(uuid.New(), user.RoleBroker)
		s.mockValidator.EXPECT().ValidateToken("good-token").Return(actor, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "good-token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(actor.ID().String(), body["id"])
		s.Equal("broker", body["role"])
	})

	s.Run("error: missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: non-bearer scheme", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/me", nil, "",
			map[string]string{"Authorization": "Basic dXNlcjpwYXNz"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: invalid token", func() {
		s.mockValidator.EXPECT().ValidateToken("bad-token").Return(user.Actor{}, jwt.ErrInvalidToken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "bad-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	s.Run("success: admin passes", func() {
		s.mockValidator.EXPECT().ValidateToken("admin-token").
			Return(user.NewActor(uuid.New(), user.RoleAdmin), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin", nil, "admin-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: broker is forbidden", func() {
		s.mockValidator.EXPECT().ValidateToken("broker-token").
			Return(user.NewActor(uuid.New(), user.RoleBroker), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin", nil, "broker-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: used without RequireAuth", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/misconfigured", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
