package queries

import (
	"context"

	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/usecase/ledger"
	"envelope-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, status string) ([]*ReservationView, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	ledger  ledger.ReservationLedger
	catalog shared.PartnerCatalog
}

func NewReservationQueries(l ledger.ReservationLedger, catalog shared.PartnerCatalog) ReservationQueries {
	return &reservationQueriesImpl{ledger: l, catalog: catalog}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	r, err := q.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := q.toViews(ctx, []*reservation.Reservation{r})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListByPartner filters by status when status is non-empty.
func (q *reservationQueriesImpl) ListByPartner(ctx context.Context, partnerID uuid.UUID, status string) ([]*ReservationView, error) {
	var filter *reservation.Status
	if status != "" {
		s, err := reservation.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = &s
	}

	rs, err := q.ledger.ListByPartner(ctx, partnerID, filter)
	if err != nil {
		return nil, err
	}
	return q.toViews(ctx, rs)
}

func (q *reservationQueriesImpl) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*ReservationView, error) {
	rs, err := q.ledger.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return q.toViews(ctx, rs)
}

// toViews resolves catalog names once per partner and product.
func (q *reservationQueriesImpl) toViews(ctx context.Context, rs []*reservation.Reservation) ([]*ReservationView, error) {
	partnerNames := make(map[uuid.UUID]string)
	productTitles := make(map[uuid.UUID]string)

	views := make([]*ReservationView, 0, len(rs))
	for _, r := range rs {
		name, ok := partnerNames[r.PartnerID()]
		if !ok {
			p, err := q.catalog.GetPartner(ctx, r.PartnerID())
			if err != nil && !errs.Is(err, partner.ErrPartnerNotFound) {
				return nil, err
			}
			if p != nil {
				name = p.Name
			}
			partnerNames[r.PartnerID()] = name
		}

		title, ok := productTitles[r.ProductID()]
		if !ok {
			pr, err := q.catalog.GetProduct(ctx, r.ProductID())
			if err != nil && !errs.Is(err, partner.ErrProductNotFound) {
				return nil, err
			}
			if pr != nil {
				title = pr.Title
			}
			productTitles[r.ProductID()] = title
		}

		views = append(views, NewReservationView(r, name, title))
	}
	return views, nil
}
