package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/pkg/clock"
	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/pkg/metrics"
	"envelope-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	// ErrBusy means the partner lock could not be obtained before the ledger deadline.
	ErrBusy = errs.New("ledger busy")
)

type ReserveInput struct {
	ProductID      uuid.UUID
	PartnerID      uuid.UUID
	RequesterID    uuid.UUID
	Amount         int64
	Notes          string
	IdempotencyKey *string
}

type ReserveResult struct {
	Reservation *reservation.Reservation
	Partner     *partner.Partner
	Product     *partner.Product
	// Replayed is true when an earlier reservation with the same idempotency key was returned.
	// A replay skips catalog validation, so Partner or Product may be nil.
	Replayed bool
}

func (r *ReserveResult) PartnerName() string {
	if r.Partner == nil {
		return ""
	}
	return r.Partner.Name
}

func (r *ReserveResult) ProductTitle() string {
	if r.Product == nil {
		return ""
	}
	return r.Product.Title
}

// ReservationLedger is the admission-control core and the only writer of reservations.
type ReservationLedger interface {
	Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error)
	Cancel(ctx context.Context, reservationID, actorID uuid.UUID) (*reservation.Reservation, error)
	SetEnvelope(ctx context.Context, partnerID uuid.UUID, newEnvelope int64) (capacity.Snapshot, error)
	Get(ctx context.Context, reservationID uuid.UUID) (*reservation.Reservation, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, status *reservation.Status) ([]*reservation.Reservation, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*reservation.Reservation, error)
	RemainingFor(ctx context.Context, partnerID uuid.UUID) (capacity.Amount, error)
	Snapshot(ctx context.Context, partnerID uuid.UUID) (capacity.Snapshot, error)
	Verify(ctx context.Context, partnerID uuid.UUID) (capacity.Audit, error)
}

type Options struct {
	LockTimeout time.Duration
}

type ledgerImpl struct {
	uow          shared.UnitOfWork
	reservations shared.ReservationReader
	capacities   shared.CapacityReader
	catalog      shared.PartnerCatalog
	clock        clock.Clock
	metrics      *metrics.LedgerMetrics
	logger       *slog.Logger
	lockTimeout  time.Duration
}

func NewLedger(
	uow shared.UnitOfWork,
	reservations shared.ReservationReader,
	capacities shared.CapacityReader,
	catalog shared.PartnerCatalog,
	clk clock.Clock,
	m *metrics.LedgerMetrics,
	logger *slog.Logger,
	opts Options,
) ReservationLedger {
	return &ledgerImpl{
		uow:          uow,
		reservations: reservations,
		capacities:   capacities,
		catalog:      catalog,
		clock:        clk,
		metrics:      m,
		logger:       logger,
		lockTimeout:  opts.LockTimeout,
	}
}

func (l *ledgerImpl) Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error) {
	started := time.Now()
	defer l.metrics.ObserveOperation("reserve", started)

	res, err := l.reserve(ctx, in)
	l.metrics.ObserveReservation(reserveOutcome(res, err))
	return res, err
}

func (l *ledgerImpl) reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error) {
	amount, err := capacity.NewAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(in.Notes)
	if err != nil {
		return nil, err
	}
	var key *reservation.IdempotencyKey
	if in.IdempotencyKey != nil {
		k, kerr := reservation.NewIdempotencyKey(*in.IdempotencyKey)
		if kerr != nil {
			return nil, kerr
		}
		key = &k
	}

	// An accepted key replays even if the catalog changed since.
	if key != nil {
		existing, ferr := l.reservations.FindByIdempotencyKey(ctx, in.RequesterID, *key)
		if ferr != nil {
			return nil, ferr
		}
		if existing != nil {
			return l.replay(ctx, existing, in.ProductID, in.PartnerID, amount, note)
		}
	}

	p, pr, err := l.resolveProduct(ctx, in.ProductID, in.PartnerID)
	if err != nil {
		return nil, err
	}

	var created, replayed *reservation.Reservation
	err = l.withinPartner(ctx, in.PartnerID, func(ctx context.Context, tx shared.Tx) error {
		if key != nil {
			existing, ferr := tx.Reservations().FindByIdempotencyKey(ctx, in.RequesterID, *key)
			if ferr != nil {
				return ferr
			}
			if existing != nil {
				replayed = existing
				return nil
			}
		}

		if _, cerr := tx.Capacity().TryCommit(ctx, in.PartnerID, amount); cerr != nil {
			return cerr
		}

		r, nerr := reservation.NewReservation(in.ProductID, in.PartnerID, in.RequesterID, amount, note, key, l.clock.Now())
		if nerr != nil {
			return nerr
		}
		if ierr := tx.Reservations().Insert(ctx, r); ierr != nil {
			return ierr
		}
		created = r
		return nil
	})
	if err != nil {
		// Same key raced through another partner's lock; the committed one wins.
		if key != nil && errs.Is(err, shared.ErrDuplicateIdempotencyKey) {
			existing, ferr := l.reservations.FindByIdempotencyKey(ctx, in.RequesterID, *key)
			if ferr != nil {
				return nil, ferr
			}
			if existing != nil {
				return l.replay(ctx, existing, in.ProductID, in.PartnerID, amount, note)
			}
		}
		return nil, err
	}
	if replayed != nil {
		return l.replay(ctx, replayed, in.ProductID, in.PartnerID, amount, note)
	}

	l.logger.InfoContext(ctx, "reservation committed",
		slog.String("reservation_id", created.ID().String()),
		slog.String("partner_id", in.PartnerID.String()),
		slog.Int64("amount", amount.Minor()))

	return &ReserveResult{Reservation: created, Partner: p, Product: pr}, nil
}

func (l *ledgerImpl) replay(
	ctx context.Context,
	existing *reservation.Reservation,
	productID, partnerID uuid.UUID,
	amount capacity.Amount,
	note reservation.Note,
) (*ReserveResult, error) {
	if !existing.SameRequest(productID, partnerID, amount, note) {
		return nil, reservation.ErrIdempotencyKeyReused
	}
	p, pr, err := l.lookupProduct(ctx, existing.ProductID(), existing.PartnerID())
	if err != nil {
		return nil, err
	}
	return &ReserveResult{Reservation: existing, Partner: p, Product: pr, Replayed: true}, nil
}

// lookupProduct returns nil for a missing partner or product.
func (l *ledgerImpl) lookupProduct(ctx context.Context, productID, partnerID uuid.UUID) (*partner.Partner, *partner.Product, error) {
	pr, err := l.catalog.GetProduct(ctx, productID)
	if err != nil && !errs.Is(err, partner.ErrProductNotFound) {
		return nil, nil, err
	}
	p, err := l.catalog.GetPartner(ctx, partnerID)
	if err != nil && !errs.Is(err, partner.ErrPartnerNotFound) {
		return nil, nil, err
	}
	return p, pr, nil
}

func (l *ledgerImpl) resolveProduct(ctx context.Context, productID, partnerID uuid.UUID) (*partner.Partner, *partner.Product, error) {
	p, pr, err := l.lookupProduct(ctx, productID, partnerID)
	if err != nil {
		return nil, nil, err
	}
	if err := partner.CheckReservable(p, pr, partnerID); err != nil {
		return nil, nil, err
	}
	return p, pr, nil
}

func (l *ledgerImpl) Cancel(ctx context.Context, reservationID, actorID uuid.UUID) (*reservation.Reservation, error) {
	started := time.Now()
	defer l.metrics.ObserveOperation("cancel", started)

	r, err := l.cancel(ctx, reservationID, actorID)
	l.metrics.ObserveCancellation(cancelOutcome(err))
	return r, err
}

func (l *ledgerImpl) cancel(ctx context.Context, reservationID, actorID uuid.UUID) (*reservation.Reservation, error) {
	// The partner of a reservation never changes, so the unlocked read is enough to pick the lock.
	current, err := l.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if current.IsCancelled() {
		return nil, reservation.ErrAlreadyCancelled
	}

	var cancelled *reservation.Reservation
	err = l.withinPartner(ctx, current.PartnerID(), func(ctx context.Context, tx shared.Tx) error {
		r, ferr := tx.Reservations().FindByID(ctx, reservationID)
		if ferr != nil {
			return ferr
		}
		if cerr := r.Cancel(actorID, l.clock.Now()); cerr != nil {
			return cerr
		}
		if merr := tx.Reservations().MarkCancelled(ctx, r); merr != nil {
			return merr
		}
		if rerr := tx.Capacity().Release(ctx, r.PartnerID(), r.Amount()); rerr != nil {
			return rerr
		}
		cancelled = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "reservation cancelled",
		slog.String("reservation_id", reservationID.String()),
		slog.String("actor_id", actorID.String()))
	return cancelled, nil
}

func (l *ledgerImpl) SetEnvelope(ctx context.Context, partnerID uuid.UUID, newEnvelope int64) (capacity.Snapshot, error) {
	started := time.Now()
	defer l.metrics.ObserveOperation("set_envelope", started)

	envelope, err := capacity.NewEnvelope(newEnvelope)
	if err != nil {
		return capacity.Snapshot{}, err
	}

	var snap capacity.Snapshot
	err = l.withinPartner(ctx, partnerID, func(ctx context.Context, tx shared.Tx) error {
		s, serr := tx.Capacity().SetEnvelope(ctx, partnerID, envelope)
		if serr != nil {
			return serr
		}
		snap = s
		return nil
	})
	if err != nil {
		return capacity.Snapshot{}, err
	}

	l.logger.InfoContext(ctx, "partner envelope resized",
		slog.String("partner_id", partnerID.String()),
		slog.Int64("envelope", snap.Envelope.Minor()),
		slog.Int64("reserved", snap.Reserved.Minor()))
	return snap, nil
}

func (l *ledgerImpl) Get(ctx context.Context, reservationID uuid.UUID) (*reservation.Reservation, error) {
	return l.reservations.FindByID(ctx, reservationID)
}

func (l *ledgerImpl) ListByPartner(ctx context.Context, partnerID uuid.UUID, status *reservation.Status) ([]*reservation.Reservation, error) {
	return l.reservations.ListByPartner(ctx, partnerID, status)
}

func (l *ledgerImpl) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*reservation.Reservation, error) {
	return l.reservations.ListByProduct(ctx, productID)
}

func (l *ledgerImpl) RemainingFor(ctx context.Context, partnerID uuid.UUID) (capacity.Amount, error) {
	snap, err := l.capacities.Snapshot(ctx, partnerID)
	if err != nil {
		return 0, err
	}
	return snap.Remaining, nil
}

func (l *ledgerImpl) Snapshot(ctx context.Context, partnerID uuid.UUID) (capacity.Snapshot, error) {
	return l.capacities.Snapshot(ctx, partnerID)
}

func (l *ledgerImpl) Verify(ctx context.Context, partnerID uuid.UUID) (capacity.Audit, error) {
	audit, err := l.capacities.Audit(ctx, partnerID)
	if err != nil {
		return capacity.Audit{}, err
	}
	if !audit.Consistent() {
		l.logger.WarnContext(ctx, "capacity drift detected",
			slog.String("partner_id", partnerID.String()),
			slog.Int64("reserved", audit.Reserved.Minor()),
			slog.Int64("active_total", audit.ActiveTotal.Minor()))
	}
	return audit, nil
}

// withinPartner bounds the whole unit of work, lock wait included, by the ledger deadline.
func (l *ledgerImpl) withinPartner(ctx context.Context, partnerID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	opCtx, cancel := context.WithTimeout(ctx, l.lockTimeout)
	defer cancel()

	err := l.uow.WithinPartner(opCtx, partnerID, fn)
	if err == nil {
		return nil
	}
	if errs.Is(err, shared.ErrLockTimeout) ||
		(errors.Is(opCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil) {
		l.logger.WarnContext(ctx, "partner lock not acquired before deadline",
			slog.String("partner_id", partnerID.String()),
			slog.Duration("timeout", l.lockTimeout))
		return errs.Mark(err, ErrBusy)
	}
	return err
}

func reserveOutcome(res *ReserveResult, err error) string {
	switch {
	case err == nil && res.Replayed:
		return metrics.OutcomeReplayed
	case err == nil:
		return metrics.OutcomeAccepted
	case errs.Is(err, capacity.ErrInsufficientCapacity):
		return metrics.OutcomeInsufficient
	case errs.Is(err, ErrBusy):
		return metrics.OutcomeBusy
	case errs.Is(err, reservation.ErrIdempotencyKeyReused):
		return metrics.OutcomeConflict
	case errs.Is(err, capacity.ErrInvalidAmount),
		errs.Is(err, partner.ErrInvalidProduct),
		errs.Is(err, reservation.ErrNoteTooLong),
		errs.Is(err, reservation.ErrInvalidIdempotencyKey):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func cancelOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeAccepted
	case errs.Is(err, reservation.ErrReservationNotFound):
		return metrics.OutcomeNotFound
	case errs.Is(err, reservation.ErrAlreadyCancelled):
		return metrics.OutcomeConflict
	case errs.Is(err, ErrBusy):
		return metrics.OutcomeBusy
	default:
		return metrics.OutcomeError
	}
}
