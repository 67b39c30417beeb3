//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/usecase/queries"
	"envelope-ledger/tests/common/builder"
	ledgermock "envelope-ledger/tests/mock/ledger"
	sharedmock "envelope-ledger/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationQueriesTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockLedger  *ledgermock.MockReservationLedger
	mockCatalog *sharedmock.MockPartnerCatalog
	queries     queries.ReservationQueries
	partnerID   uuid.UUID
	productID   uuid.UUID
}

func (s *ReservationQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLedger = ledgermock.NewMockReservationLedger(s.mockCtrl)
	s.mockCatalog = sharedmock.NewMockPartnerCatalog(s.mockCtrl)
	s.queries = queries.NewReservationQueries(s.mockLedger, s.mockCatalog)
	s.partnerID = uuid.New()
	s.productID = uuid.New()
}

func (s *ReservationQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

func (s *ReservationQueriesTestSuite) newReservation(amount int64) *reservation.Reservation {
	r, err := builder.NewReservationBuilder().WithPartner(s.partnerID, s.productID).WithAmount(amount).BuildDomain()
	s.Require().NoError(err)
	return r
}

func (s *ReservationQueriesTestSuite) expectCatalog() {
	s.mockCatalog.EXPECT().GetPartner(gomock.Any(), s.partnerID).
		Return(&partner.Partner{ID: s.partnerID, Name: "SwissLife", Active: true}, nil).Times(1)
	s.mockCatalog.EXPECT().GetProduct(gomock.Any(), s.productID).
		Return(&partner.Product{ID: s.productID, PartnerID: s.partnerID, Title: "Phoenix Memory 2029"}, nil).Times(1)
}

func (s *ReservationQueriesTestSuite) TestGetByID() {
	ctx := context.Background()

	s.Run("success: view carries catalog names", func() {
		r := s.newReservation(400_000)
		s.mockLedger.EXPECT().Get(ctx, r.ID()).Return(r, nil).Times(1)
		s.expectCatalog()

		view, err := s.queries.GetByID(ctx, r.ID())
		s.Require().NoError(err)
		s.Equal(r.ID(), view.ID)
		s.Equal("SwissLife", view.PartnerName)
		s.Equal("Phoenix Memory 2029", view.ProductTitle)
		s.Equal(int64(400_000), view.Amount)
		s.Equal("active", view.Status)
	})

	s.Run("success: names left empty when the catalog entry is gone", func() {
		r := s.newReservation(1)
		s.mockLedger.EXPECT().Get(ctx, r.ID()).Return(r, nil).Times(1)
		s.mockCatalog.EXPECT().GetPartner(gomock.Any(), s.partnerID).Return(nil, partner.ErrPartnerNotFound).Times(1)
		s.mockCatalog.EXPECT().GetProduct(gomock.Any(), s.productID).Return(nil, partner.ErrProductNotFound).Times(1)

		view, err := s.queries.GetByID(ctx, r.ID())
		s.Require().NoError(err)
		s.Empty(view.PartnerName)
		s.Empty(view.ProductTitle)
	})

	s.Run("error: catalog failure", func() {
		r := s.newReservation(1)
		s.mockLedger.EXPECT().Get(ctx, r.ID()).Return(r, nil).Times(1)
		s.mockCatalog.EXPECT().GetPartner(gomock.Any(), s.partnerID).Return(nil, errors.New("connection reset")).Times(1)

		_, err := s.queries.GetByID(ctx, r.ID())
		s.EqualError(err, "connection reset")
	})

	s.Run("error: not found", func() {
		id := uuid.New()
		s.mockLedger.EXPECT().Get(ctx, id).Return(nil, reservation.ErrReservationNotFound).Times(1)

		_, err := s.queries.GetByID(ctx, id)
		s.ErrorIs(err, reservation.ErrReservationNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestListByPartner() {
	ctx := context.Background()

	s.Run("success: catalog looked up once per partner and product", func() {
		rs := []*reservation.Reservation{s.newReservation(100), s.newReservation(200), s.newReservation(300)}
		s.mockLedger.EXPECT().ListByPartner(ctx, s.partnerID, (*reservation.Status)(nil)).Return(rs, nil).Times(1)
		s.expectCatalog()

		views, err := s.queries.ListByPartner(ctx, s.partnerID, "")
		s.Require().NoError(err)
		s.Require().Len(views, 3)
		for i, v := range views {
			s.Equal(rs[i].ID(), v.ID)
			s.Equal("SwissLife", v.PartnerName)
		}
	})

	s.Run("success: status filter is parsed", func() {
		cancelled := reservation.StatusCancelled
		s.mockLedger.EXPECT().ListByPartner(ctx, s.partnerID, &cancelled).Return(nil, nil).Times(1)

		views, err := s.queries.ListByPartner(ctx, s.partnerID, "cancelled")
		s.Require().NoError(err)
		s.Empty(views)
	})

	s.Run("error: invalid status", func() {
		_, err := s.queries.ListByPartner(ctx, s.partnerID, "pending")
		s.ErrorIs(err, reservation.ErrInvalidStatus)
	})

	s.Run("error: unknown partner", func() {
		s.mockLedger.EXPECT().ListByPartner(ctx, s.partnerID, gomock.Any()).Return(nil, capacity.ErrUnknownPartner).Times(1)

		_, err := s.queries.ListByPartner(ctx, s.partnerID, "")
		s.ErrorIs(err, capacity.ErrUnknownPartner)
	})
}

func (s *ReservationQueriesTestSuite) TestListByProduct() {
	ctx := context.Background()
	rs := []*reservation.Reservation{s.newReservation(100)}
	s.mockLedger.EXPECT().ListByProduct(ctx, s.productID).Return(rs, nil).Times(1)
	s.expectCatalog()

	views, err := s.queries.ListByProduct(ctx, s.productID)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal("Phoenix Memory 2029", views[0].ProductTitle)
}

func TestCapacityQueries(t *testing.T) {
	ctx := context.Background()
	partnerID := uuid.New()

	ctrl := gomock.NewController(t)
	mockLedger := ledgermock.NewMockReservationLedger(ctrl)
	q := queries.NewCapacityQueries(mockLedger)

	t.Run("snapshot", func(t *testing.T) {
		mockLedger.EXPECT().Snapshot(ctx, partnerID).
			Return(capacity.Snapshot{PartnerID: partnerID, Envelope: 1_000, Reserved: 250, Remaining: 750}, nil).Times(1)

		view, err := q.GetPartnerCapacity(ctx, partnerID)
		require.NoError(t, err)
		assert.Equal(t, queries.CapacityView{PartnerID: partnerID, Envelope: 1_000, Reserved: 250, Remaining: 750}, *view)
	})

	t.Run("audit reports drift", func(t *testing.T) {
		mockLedger.EXPECT().Verify(ctx, partnerID).
			Return(capacity.Audit{PartnerID: partnerID, Envelope: 1_000, Reserved: 250, ActiveTotal: 200, ActiveCount: 2}, nil).Times(1)

		audit, err := q.VerifyPartnerCapacity(ctx, partnerID)
		require.NoError(t, err)
		assert.False(t, audit.Consistent)
		assert.Equal(t, int64(50), audit.Drift)
		assert.Equal(t, 2, audit.ActiveCount)
	})

	t.Run("unknown partner", func(t *testing.T) {
		mockLedger.EXPECT().Snapshot(ctx, partnerID).Return(capacity.Snapshot{}, capacity.ErrUnknownPartner).Times(1)

		_, err := q.GetPartnerCapacity(ctx, partnerID)
		assert.ErrorIs(t, err, capacity.ErrUnknownPartner)
	})
}
