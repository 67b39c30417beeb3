//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/domain/user"
	"envelope-ledger/internal/usecase/commands"
	"envelope-ledger/internal/usecase/ledger"
	"envelope-ledger/internal/usecase/shared"
	"envelope-ledger/tests/common/builder"
	ledgermock "envelope-ledger/tests/mock/ledger"
	sharedmock "envelope-ledger/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockLedger  *ledgermock.MockReservationLedger
	mockCatalog *sharedmock.MockPartnerCatalog
	mockSink    *sharedmock.MockNotificationSink
	commands    commands.ReservationCommands
	broker      user.Actor
	builder     *builder.ReservationBuilder
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLedger = ledgermock.NewMockReservationLedger(s.mockCtrl)
	s.mockCatalog = sharedmock.NewMockPartnerCatalog(s.mockCtrl)
	s.mockSink = sharedmock.NewMockNotificationSink(s.mockCtrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.commands = commands.NewReservationCommands(s.mockLedger, s.mockCatalog, s.mockSink,
		commands.NotifyOptions{Audience: "admins"}, logger)

	s.broker = user.NewActor(uuid.New(), user.RoleBroker)
	s.builder = builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.RequesterID = s.broker.ID()
	})
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) reserveResult(replayed bool) *ledger.ReserveResult {
	r, err := s.builder.BuildDomain()
	s.Require().NoError(err)
	return &ledger.ReserveResult{
		Reservation: r,
		Partner:     &partner.Partner{ID: s.builder.PartnerID, Name: s.builder.PartnerName, Active: true},
		Product:     &partner.Product{ID: s.builder.ProductID, PartnerID: s.builder.PartnerID, Title: s.builder.ProductTitle},
		Replayed:    replayed,
	}
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCreateReservation() {
	ctx := context.Background()

	s.Run("success: reserves and notifies admins", func() {
		key := "order-1"
		result := s.reserveResult(false)
		s.mockLedger.EXPECT().Reserve(ctx, ledger.ReserveInput{
			ProductID:      s.builder.ProductID,
			PartnerID:      s.builder.PartnerID,
			RequesterID:    s.broker.ID(),
			Amount:         400_000,
			Notes:          s.builder.Notes,
			IdempotencyKey: &key,
		}).Return(result, nil).Times(1)
		s.mockSink.EXPECT().Notify(gomock.Any(), "admins", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, summary shared.ReservationSummary) error {
				s.Equal(result.Reservation.ID(), summary.ReservationID)
				s.Equal("SwissLife", summary.PartnerName)
				s.Equal(s.builder.ProductTitle, summary.ProductTitle)
				s.Equal(int64(400_000), summary.Amount)
				s.Equal(s.broker.ID(), summary.RequesterID)
				return nil
			}).Times(1)

		got, err := s.commands.CreateReservation(ctx, s.builder.BuildCreateRequestDTO(), s.broker, &key)
		s.Require().NoError(err)
		s.False(got.IsReplayed)
		s.Equal("SwissLife", got.Reservation.PartnerName)
		s.Equal(reservation.StatusActive.String(), got.Reservation.Status)
	})

	s.Run("success: replay does not notify", func() {
		s.mockLedger.EXPECT().Reserve(ctx, gomock.Any()).Return(s.reserveResult(true), nil).Times(1)
		s.mockSink.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		got, err := s.commands.CreateReservation(ctx, s.builder.BuildCreateRequestDTO(), s.broker, nil)
		s.Require().NoError(err)
		s.True(got.IsReplayed)
	})

	s.Run("success: notification failure does not fail the reservation", func() {
		s.mockLedger.EXPECT().Reserve(ctx, gomock.Any()).Return(s.reserveResult(false), nil).Times(1)
		s.mockSink.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("redis unavailable")).Times(1)

		got, err := s.commands.CreateReservation(ctx, s.builder.BuildCreateRequestDTO(), s.broker, nil)
		s.Require().NoError(err)
		s.NotNil(got.Reservation)
	})

	s.Run("success: partner resolved from the catalog when omitted", func() {
		req := s.builder.BuildCreateRequestDTO()
		req.PartnerID = nil
		s.mockCatalog.EXPECT().GetProduct(ctx, s.builder.ProductID).
			Return(&partner.Product{ID: s.builder.ProductID, PartnerID: s.builder.PartnerID}, nil).Times(1)
		s.mockLedger.EXPECT().Reserve(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, in ledger.ReserveInput) (*ledger.ReserveResult, error) {
				s.Equal(s.builder.PartnerID, in.PartnerID)
				return s.reserveResult(false), nil
			}).Times(1)
		s.mockSink.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := s.commands.CreateReservation(ctx, req, s.broker, nil)
		s.NoError(err)
	})

	s.Run("error: omitted partner and unknown product", func() {
		req := s.builder.BuildCreateRequestDTO()
		req.PartnerID = nil
		s.mockCatalog.EXPECT().GetProduct(ctx, s.builder.ProductID).Return(nil, partner.ErrProductNotFound).Times(1)

		_, err := s.commands.CreateReservation(ctx, req, s.broker, nil)
		var invalid *partner.InvalidProductError
		s.Require().ErrorAs(err, &invalid)
		s.Equal(partner.ReasonProductNotFound, invalid.Reason)
	})

	s.Run("error: ledger rejection is passed through", func() {
		s.mockLedger.EXPECT().Reserve(ctx, gomock.Any()).
			Return(nil, &capacity.InsufficientCapacityError{Remaining: 10}).Times(1)
		s.mockSink.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.commands.CreateReservation(ctx, s.builder.BuildCreateRequestDTO(), s.broker, nil)
		s.ErrorIs(err, capacity.ErrInsufficientCapacity)
	})
}

// ================================================================================
// TestCancelReservation
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCancelReservation() {
	ctx := context.Background()

	s.Run("success: requester cancels", func() {
		r, err := s.builder.BuildDomain()
		s.Require().NoError(err)
		s.mockLedger.EXPECT().Get(ctx, r.ID()).Return(r, nil).Times(1)
		s.mockLedger.EXPECT().Cancel(ctx, r.ID(), s.broker.ID()).Return(r, nil).Times(1)

		s.NoError(s.commands.CancelReservation(ctx, r.ID(), s.broker))
	})

	s.Run("success: admin cancels on behalf of a broker", func() {
		admin := user.NewActor(uuid.New(), user.RoleAdmin)
		r, err := s.builder.BuildDomain()
		s.Require().NoError(err)
		s.mockLedger.EXPECT().Get(ctx, r.ID()).Return(r, nil).Times(1)
		s.mockLedger.EXPECT().Cancel(ctx, r.ID(), admin.ID()).Return(r, nil).Times(1)

		s.NoError(s.commands.CancelReservation(ctx, r.ID(), admin))
	})

	s.Run("error: another broker", func() {
		r, err := s.builder.BuildDomain()
		s.Require().NoError(err)
		s.mockLedger.EXPECT().Get(ctx, r.ID()).Return(r, nil).Times(1)
		s.mockLedger.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err = s.commands.CancelReservation(ctx, r.ID(), user.NewActor(uuid.New(), user.RoleBroker))
		s.ErrorIs(err, user.ErrNotOwner)
	})

	s.Run("error: not found", func() {
		id := uuid.New()
		s.mockLedger.EXPECT().Get(ctx, id).Return(nil, reservation.ErrReservationNotFound).Times(1)

		s.ErrorIs(s.commands.CancelReservation(ctx, id, s.broker), reservation.ErrReservationNotFound)
	})

	s.Run("error: already cancelled", func() {
		r, err := s.builder.BuildDomain()
		s.Require().NoError(err)
		s.mockLedger.EXPECT().Get(ctx, r.ID()).Return(r, nil).Times(1)
		s.mockLedger.EXPECT().Cancel(ctx, r.ID(), s.broker.ID()).Return(nil, reservation.ErrAlreadyCancelled).Times(1)

		s.ErrorIs(s.commands.CancelReservation(ctx, r.ID(), s.broker), reservation.ErrAlreadyCancelled)
	})
}
