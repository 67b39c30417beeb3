//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/infra"
	"envelope-ledger/internal/infra/repository"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/usecase/shared"
	"envelope-ledger/tests/common/builder"
	repositorymock "envelope-ledger/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Insert Tests
// =============================================================================

func TestReservationRepository_Insert(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		setupMock   func(*repositorymock.MockReservationWriteQueries, *reservation.Reservation, sqlc.DBTX)
		expectErr   error
		expectKind  infra.RepositoryErrorKind
		expectNoErr bool
	}{
		{
			name: "success: row inserted with idempotency key",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, res *reservation.Reservation, db sqlc.DBTX) {
				mock.EXPECT().InsertReservation(ctx, db, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.InsertReservationParams) error {
						assert.Equal(t, res.ID(), arg.ID)
						assert.Equal(t, int64(400_000), arg.Amount)
						assert.Equal(t, "active", arg.Status)
						assert.True(t, arg.IdempotencyKey.Valid)
						assert.Equal(t, "order-1", arg.IdempotencyKey.String)
						return nil
					})
			},
			expectNoErr: true,
		},
		{
			name: "error: idempotency key race is reported as duplicate key",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, db sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_reservations_requester_idempotency"}
				mock.EXPECT().InsertReservation(ctx, db, gomock.Any()).Return(dup)
			},
			expectErr:  shared.ErrDuplicateIdempotencyKey,
			expectKind: infra.KindDuplicateKey,
		},
		{
			name: "error: other unique violation is not an idempotency race",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, db sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505", ConstraintName: "reservations_pkey"}
				mock.EXPECT().InsertReservation(ctx, db, gomock.Any()).Return(dup)
			},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name: "error: check violation",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, db sqlc.DBTX) {
				mock.EXPECT().InsertReservation(ctx, db, gomock.Any()).Return(&pgconn.PgError{Code: "23514"})
			},
			expectKind: infra.KindCheckViolated,
		},
		{
			name: "error: database failure",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, db sqlc.DBTX) {
				mock.EXPECT().InsertReservation(ctx, db, gomock.Any()).Return(errors.New("database connection error"))
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			res, err := builder.NewReservationBuilder().WithIdempotencyKey("order-1").BuildDomain()
			require.NoError(t, err)
			tc.setupMock(mockQueries, res, mockDB)

			actualErr := repo.Insert(ctx, res)
			if tc.expectNoErr {
				assert.NoError(t, actualErr)
				return
			}
			require.Error(t, actualErr)
			assert.True(t, infra.IsKind(actualErr, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualErr)
			if tc.expectErr != nil {
				assert.True(t, errs.Is(actualErr, tc.expectErr), "expected [%v] but got (%v)", tc.expectErr, actualErr)
			} else {
				assert.False(t, errs.Is(actualErr, shared.ErrDuplicateIdempotencyKey), "unexpected duplicate key mark: %v", actualErr)
			}
		})
	}
}

// =============================================================================
// Lookup Tests
// =============================================================================

func TestReservationRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewReservationRepository(mockQueries, mockDB)

	b := builder.NewReservationBuilder().WithIdempotencyKey("order-7")
	row := b.BuildInfra()

	t.Run("success: row is rebuilt into the aggregate", func(t *testing.T) {
		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, b.ID).Return(row, nil)

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID())
		assert.Equal(t, b.Amount, got.Amount())
		assert.Equal(t, reservation.StatusActive, got.Status())
		require.NotNil(t, got.IdempotencyKey())
		assert.Equal(t, "order-7", got.IdempotencyKey().String())
		assert.Nil(t, got.CancelledAt())
	})

	t.Run("error: no rows maps to not found", func(t *testing.T) {
		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, gomock.Any()).Return(sqlc.Reservations{}, pgx.ErrNoRows)

		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
	})

	t.Run("error: lock timeout keeps its kind", func(t *testing.T) {
		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, gomock.Any()).
			Return(sqlc.Reservations{}, &pgconn.PgError{Code: "55P03"})

		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindLockTimeout))
	})
}

func TestReservationRepository_FindByIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewReservationRepository(mockQueries, mockDB)

	key, err := reservation.NewIdempotencyKey("order-9")
	require.NoError(t, err)
	requester := uuid.New()

	t.Run("no match returns nil without error", func(t *testing.T) {
		mockQueries.EXPECT().GetReservationByIdempotencyKey(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.GetReservationByIdempotencyKeyParams) (sqlc.Reservations, error) {
				assert.Equal(t, requester, arg.RequesterID)
				assert.Equal(t, "order-9", arg.IdempotencyKey.String)
				return sqlc.Reservations{}, pgx.ErrNoRows
			})

		got, err := repo.FindByIdempotencyKey(ctx, requester, key)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("match is returned", func(t *testing.T) {
		row := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.RequesterID = requester
		}).WithIdempotencyKey("order-9").BuildInfra()
		mockQueries.EXPECT().GetReservationByIdempotencyKey(ctx, mockDB, gomock.Any()).Return(row, nil)

		got, err := repo.FindByIdempotencyKey(ctx, requester, key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, row.ID, got.ID())
	})
}

// =============================================================================
// MarkCancelled Tests
// =============================================================================

func TestReservationRepository_MarkCancelled(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		rows       int64
		dbErr      error
		expectErr  error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: one row updated", rows: 1},
		{name: "error: already cancelled row is not updated", rows: 0, expectErr: reservation.ErrAlreadyCancelled},
		{name: "error: database failure", dbErr: errors.New("database connection error"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			res, err := builder.NewReservationBuilder().BuildDomain()
			require.NoError(t, err)
			actor := uuid.New()
			require.NoError(t, res.Cancel(actor, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))

			mockQueries.EXPECT().CancelReservation(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.CancelReservationParams) (int64, error) {
					assert.Equal(t, res.ID(), arg.ID)
					assert.True(t, arg.CancelledAt.Valid)
					assert.True(t, arg.CancelledBy.Valid)
					return tc.rows, tc.dbErr
				})

			actualErr := repo.MarkCancelled(ctx, res)
			switch {
			case tc.expectErr != nil:
				assert.ErrorIs(t, actualErr, tc.expectErr)
			case tc.expectKind != "":
				assert.True(t, infra.IsKind(actualErr, tc.expectKind))
			default:
				assert.NoError(t, actualErr)
			}
		})
	}
}

// =============================================================================
// Test Helpers
// =============================================================================

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}
