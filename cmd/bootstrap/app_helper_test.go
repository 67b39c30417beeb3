//go:build unit || e2e

package bootstrap_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"envelope-ledger/cmd/bootstrap"
	"envelope-ledger/cmd/bootstrap/components"
	"envelope-ledger/internal/domain/user"
	resdto "envelope-ledger/internal/handler/dto/response"
	"envelope-ledger/internal/pkg/config"
	"envelope-ledger/tests/common/authtest"
	"envelope-ledger/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// startApp wires the production modules around cfg and pool, starts them and
// returns the router. The app is stopped when the test ends.
func startApp(t *testing.T, cfg config.Config, pool *pgxpool.Pool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var router *gin.Engine
	app := fx.New(
		fx.Provide(
			func() config.Config { return cfg },
			func() *pgxpool.Pool { return pool },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.MetricsModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.NotificationModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start fx app")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		require.NoError(t, app.Stop(stopCtx))
	})
	return router
}

type client struct {
	router *gin.Engine
	broker string
	admin  string
}

func newClient(t *testing.T, router *gin.Engine, cfg config.Config) *client {
	jwtHelper := authtest.NewJWTHelper(cfg.JWT)
	return &client{
		router: router,
		broker: jwtHelper.GenerateToken(t, uuid.New(), user.RoleBroker),
		admin:  jwtHelper.GenerateToken(t, uuid.New(), user.RoleAdmin),
	}
}

// runSwissLifeFlow walks the envelope story end to end over HTTP against a
// partner with a 1,000,000 envelope and one product.
func runSwissLifeFlow(t *testing.T, c *client, partnerID, productID uuid.UUID) {
	t.Helper()

	reserve := func(amount int64, key string) *resdto.ReservationResponse {
		body := map[string]any{"productId": productID, "amount": amount}
		headers := map[string]string{}
		if key != "" {
			headers["Idempotency-Key"] = key
		}
		w := httptest.PerformRequestWithHeaders(t, c.router, http.MethodPost, "/api/reservations", body, c.broker, headers)
		if w.Code != http.StatusCreated {
			httptest.AssertErrorResponse(t, w, http.StatusConflict, "Insufficient capacity")
			return nil
		}
		var res resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		return &res
	}
	capacityOf := func() resdto.CapacityResponse {
		w := httptest.PerformRequest(t, c.router, http.MethodGet, "/api/partners/"+partnerID.String()+"/capacity", nil, c.broker)
		var body resdto.CapacityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		return body
	}

	first := reserve(400_000, "flow-1")
	require.NotNil(t, first)
	require.Equal(t, partnerID, first.PartnerID, "partner is resolved from the product")

	require.Nil(t, reserve(700_000, ""))
	require.Equal(t, int64(600_000), capacityOf().Remaining)

	require.NotNil(t, reserve(600_000, ""))

	w := httptest.PerformRequestWithHeaders(t, c.router, http.MethodPost, "/api/reservations",
		map[string]any{"productId": productID, "amount": 400_000}, c.broker,
		map[string]string{"Idempotency-Key": "flow-1"})
	var replay resdto.ReservationResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &replay)
	require.Equal(t, first.ID, replay.ID)

	w = httptest.PerformRequest(t, c.router, http.MethodDelete, "/api/reservations/"+first.ID.String(), nil, c.broker)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	require.Equal(t, int64(400_000), capacityOf().Remaining)

	require.NotNil(t, reserve(400_000, ""))
	require.Equal(t, int64(0), capacityOf().Remaining)

	w = httptest.PerformRequest(t, c.router, http.MethodPut, "/api/admin/partners/"+partnerID.String()+"/envelope",
		map[string]any{"envelope": 500_000}, c.broker)
	httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")

	w = httptest.PerformRequest(t, c.router, http.MethodPut, "/api/admin/partners/"+partnerID.String()+"/envelope",
		map[string]any{"envelope": 500_000}, c.admin)
	httptest.AssertErrorResponse(t, w, http.StatusConflict, "Envelope below committed amount")

	w = httptest.PerformRequest(t, c.router, http.MethodGet, "/api/admin/partners/"+partnerID.String()+"/capacity/verify", nil, c.admin)
	var audit resdto.CapacityAuditResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &audit)
	require.True(t, audit.Consistent)
	require.Equal(t, 2, audit.ActiveCount)
	require.Equal(t, int64(1_000_000), audit.Reserved)

	w = httptest.PerformRequest(t, c.router, http.MethodGet, "/api/partners/"+partnerID.String()+"/reservations?status=cancelled", nil, c.broker)
	var cancelled resdto.ReservationListResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
	require.Equal(t, 1, cancelled.Total)
	require.Equal(t, first.ID, cancelled.Items[0].ID)
	require.Equal(t, "cancelled", cancelled.Items[0].Status)
}
