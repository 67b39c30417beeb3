package api

import (
	"errors"
	"net/http"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/domain/user"
	"envelope-ledger/internal/handler/httperr"
	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/usecase/ledger"

	"github.com/gin-gonic/gin"
)

var errUnauthenticated = errors.New("unauthenticated")

// RejectionDetail is the machine-readable part of a rejected ledger request.
type RejectionDetail struct {
	Reason    string `json:"reason"`
	Remaining *int64 `json:"remaining,omitempty"`
	Reserved  *int64 `json:"reserved,omitempty"`
}

func (d RejectionDetail) RejectionReason() string { return d.Reason }

const (
	ReasonInvalidRequest         = "invalid_request"
	ReasonInvalidAmount          = "invalid_amount"
	ReasonInvalidProduct         = "invalid_product"
	ReasonInvalidNotes           = "invalid_notes"
	ReasonInvalidIdempotencyKey  = "invalid_idempotency_key"
	ReasonInvalidStatus          = "invalid_status"
	ReasonInsufficientCapacity   = "insufficient_capacity"
	ReasonEnvelopeBelowCommitted = "envelope_below_committed"
	ReasonAlreadyCancelled       = "already_cancelled"
	ReasonIdempotencyKeyReused   = "idempotency_key_reused"
	ReasonBusy                   = "busy"
)

func abortWithLedgerError(c *gin.Context, err error) {
	var insufficient *capacity.InsufficientCapacityError
	var below *capacity.EnvelopeBelowCommittedError
	var invalidProduct *partner.InvalidProductError

	switch {
	case errs.As(err, &insufficient):
		remaining := insufficient.Remaining.Minor()
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient capacity",
			RejectionDetail{Reason: ReasonInsufficientCapacity, Remaining: &remaining})
	case errs.As(err, &below):
		reserved := below.Reserved.Minor()
		httperr.AbortWithError(c, http.StatusConflict, err, "Envelope below committed amount",
			RejectionDetail{Reason: ReasonEnvelopeBelowCommitted, Reserved: &reserved})
	case errs.As(err, &invalidProduct):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product: "+invalidProduct.Reason,
			RejectionDetail{Reason: ReasonInvalidProduct})
	case errs.Is(err, capacity.ErrInvalidAmount):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid amount",
			RejectionDetail{Reason: ReasonInvalidAmount})
	case errs.Is(err, reservation.ErrNoteTooLong):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Notes too long",
			RejectionDetail{Reason: ReasonInvalidNotes})
	case errs.Is(err, reservation.ErrInvalidIdempotencyKey):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid idempotency key",
			RejectionDetail{Reason: ReasonInvalidIdempotencyKey})
	case errs.Is(err, reservation.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status",
			RejectionDetail{Reason: ReasonInvalidStatus})
	case errs.Is(err, reservation.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, capacity.ErrUnknownPartner):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Partner not found", nil)
	case errs.Is(err, reservation.ErrAlreadyCancelled):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation already cancelled",
			RejectionDetail{Reason: ReasonAlreadyCancelled})
	case errs.Is(err, user.ErrNotOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to cancel this reservation", nil)
	case errs.Is(err, reservation.ErrIdempotencyKeyReused):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Idempotency key reused with different parameters",
			RejectionDetail{Reason: ReasonIdempotencyKeyReused})
	case errs.Is(err, ledger.ErrBusy):
		c.Header("Retry-After", "1")
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Ledger busy, retry later",
			RejectionDetail{Reason: ReasonBusy})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
