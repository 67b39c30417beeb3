package api

import (
	"net/http"

	reqdto "envelope-ledger/internal/handler/dto/request"
	resdto "envelope-ledger/internal/handler/dto/response"
	"envelope-ledger/internal/handler/httperr"
	"envelope-ledger/internal/usecase/commands"
	"envelope-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CapacityHandler struct {
	cmds commands.CapacityCommands
	q    queries.CapacityQueries
}

func NewCapacityHandler(cmds commands.CapacityCommands, q queries.CapacityQueries) *CapacityHandler {
	return &CapacityHandler{cmds: cmds, q: q}
}

// @Summary Partner capacity
// @Description Envelope, committed amount and remaining capacity of a partner
// @Tags capacity
// @Produce json
// @Security BearerAuth
// @Param id path string true "Partner ID"
// @Success 200 {object} resdto.CapacityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /partners/{id}/capacity [get]
func (h *CapacityHandler) GetCapacity(c *gin.Context) {
	partnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetPartnerCapacity(c.Request.Context(), partnerID)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCapacityView(view))
}

// @Summary Resize partner envelope
// @Description Set a partner's envelope. Rejected when below the committed amount.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Partner ID"
// @Param request body reqdto.ResizeEnvelopeRequest true "New envelope"
// @Success 200 {object} resdto.CapacityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /admin/partners/{id}/envelope [put]
func (h *CapacityHandler) ResizeEnvelope(c *gin.Context) {
	partnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.ResizeEnvelopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request",
			RejectionDetail{Reason: ReasonInvalidRequest})
		return
	}

	view, err := h.cmds.ResizeEnvelope(c.Request.Context(), partnerID, *req.Envelope)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCapacityView(view))
}

// @Summary Verify partner capacity
// @Description Compare the committed amount with the sum of active reservations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Partner ID"
// @Success 200 {object} resdto.CapacityAuditResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/partners/{id}/capacity/verify [get]
func (h *CapacityHandler) VerifyCapacity(c *gin.Context) {
	partnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.VerifyPartnerCapacity(c.Request.Context(), partnerID)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCapacityAuditView(view))
}
