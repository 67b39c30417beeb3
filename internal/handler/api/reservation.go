package api

import (
	"net/http"

	reqdto "envelope-ledger/internal/handler/dto/request"
	resdto "envelope-ledger/internal/handler/dto/response"
	"envelope-ledger/internal/handler/httperr"
	"envelope-ledger/internal/handler/middleware"
	"envelope-ledger/internal/usecase/commands"
	"envelope-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Reserve part of a partner's envelope against a product. Replays with the same Idempotency-Key return the original reservation.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request",
			RejectionDetail{Reason: ReasonInvalidRequest})
		return
	}

	var idempotencyKey *string
	if key := c.GetHeader(idempotencyKeyHeader); key != "" {
		idempotencyKey = &key
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), req, actor, idempotencyKey)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.Header("Location", "/api/reservations/"+result.Reservation.ID.String())
	c.JSON(status, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Cancel an active reservation and release its amount. Only the requester or an admin may cancel.
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	if err := h.cmds.CancelReservation(c.Request.Context(), id, actor); err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List partner reservations
// @Description List reservations against a partner, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Partner ID"
// @Param status query string false "active or cancelled"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /partners/{id}/reservations [get]
func (h *ReservationHandler) ListByPartner(c *gin.Context) {
	partnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var q reqdto.ListPartnerReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status",
			RejectionDetail{Reason: ReasonInvalidStatus})
		return
	}

	views, err := h.q.ListByPartner(c.Request.Context(), partnerID, q.Status)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary List product reservations
// @Description List reservations against a product, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /products/{id}/reservations [get]
func (h *ReservationHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	views, err := h.q.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}
