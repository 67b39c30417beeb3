package commands

import (
	"context"
	"log/slog"

	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/domain/user"
	reqdto "envelope-ledger/internal/handler/dto/request"
	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/usecase/ledger"
	"envelope-ledger/internal/usecase/queries"
	"envelope-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest, requester user.Actor, idempotencyKey *string) (*CreateReservationResult, error)
	CancelReservation(ctx context.Context, reservationID uuid.UUID, actor user.Actor) error
}

type NotifyOptions struct {
	Audience string
}

type reservationUseCaseImpl struct {
	ledger   ledger.ReservationLedger
	catalog  shared.PartnerCatalog
	sink     shared.NotificationSink
	audience string
	logger   *slog.Logger
}

func NewReservationCommands(
	l ledger.ReservationLedger,
	catalog shared.PartnerCatalog,
	sink shared.NotificationSink,
	opts NotifyOptions,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationUseCaseImpl{
		ledger:   l,
		catalog:  catalog,
		sink:     sink,
		audience: opts.Audience,
		logger:   logger,
	}
}

func (uc *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	requester user.Actor,
	idempotencyKey *string,
) (*CreateReservationResult, error) {
	partnerID, err := uc.resolvePartnerID(ctx, req)
	if err != nil {
		return nil, err
	}

	res, err := uc.ledger.Reserve(ctx, ledger.ReserveInput{
		ProductID:      req.ProductID,
		PartnerID:      partnerID,
		RequesterID:    requester.ID(),
		Amount:         req.Amount,
		Notes:          req.Notes,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	view := queries.NewReservationView(res.Reservation, res.PartnerName(), res.ProductTitle())
	if !res.Replayed {
		uc.notify(ctx, view)
	}

	return &CreateReservationResult{Reservation: view, IsReplayed: res.Replayed}, nil
}

func (uc *reservationUseCaseImpl) resolvePartnerID(ctx context.Context, req reqdto.CreateReservationRequest) (uuid.UUID, error) {
	if req.PartnerID != nil {
		return *req.PartnerID, nil
	}
	pr, err := uc.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errs.Is(err, partner.ErrProductNotFound) {
			return uuid.Nil, &partner.InvalidProductError{Reason: partner.ReasonProductNotFound}
		}
		return uuid.Nil, err
	}
	return pr.PartnerID, nil
}

// notify never fails the reservation; it runs detached from the request's cancellation.
func (uc *reservationUseCaseImpl) notify(ctx context.Context, v *queries.ReservationView) {
	summary := shared.ReservationSummary{
		ReservationID: v.ID,
		PartnerID:     v.PartnerID,
		PartnerName:   v.PartnerName,
		ProductID:     v.ProductID,
		ProductTitle:  v.ProductTitle,
		Amount:        v.Amount,
		RequesterID:   v.RequesterID,
		Notes:         v.Notes,
	}
	if err := uc.sink.Notify(context.WithoutCancel(ctx), uc.audience, summary); err != nil {
		uc.logger.WarnContext(ctx, "reservation notification not delivered",
			slog.String("reservation_id", v.ID.String()),
			slog.String("error", err.Error()))
	}
}

func (uc *reservationUseCaseImpl) CancelReservation(ctx context.Context, reservationID uuid.UUID, actor user.Actor) error {
	r, err := uc.ledger.Get(ctx, reservationID)
	if err != nil {
		return err
	}
	if err := actor.CanCancel(r.RequesterID()); err != nil {
		return err
	}
	_, err = uc.ledger.Cancel(ctx, reservationID, actor.ID())
	return err
}
