//go:build unit

package capacity_test

import (
	"math"
	"testing"

	"envelope-ledger/internal/domain/capacity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name  string
		minor int64
		errIs error
	}{
		{name: "positive", minor: 1},
		{name: "zero", minor: 0, errIs: capacity.ErrInvalidAmount},
		{name: "negative", minor: -5, errIs: capacity.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := capacity.NewAmount(tt.minor)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minor, a.Minor())
		})
	}

	t.Run("envelope accepts zero", func(t *testing.T) {
		e, err := capacity.NewEnvelope(0)
		require.NoError(t, err)
		assert.Equal(t, capacity.Amount(0), e)

		_, err = capacity.NewEnvelope(-1)
		assert.ErrorIs(t, err, capacity.ErrInvalidAmount)
	})
}

func TestCapacityCommit(t *testing.T) {
	partnerID := uuid.New()

	t.Run("admits up to the envelope", func(t *testing.T) {
		c := capacity.Reconstruct(partnerID, 1_000, 0)

		token, err := c.Commit(400)
		require.NoError(t, err)
		assert.Equal(t, capacity.CommitToken{PartnerID: partnerID, Amount: 400}, token)

		_, err = c.Commit(600)
		require.NoError(t, err)
		assert.Equal(t, capacity.Amount(0), c.Remaining())
	})

	t.Run("rejection carries remaining and does not mutate", func(t *testing.T) {
		c := capacity.Reconstruct(partnerID, 1_000_000, 400_000)

		_, err := c.Commit(700_000)
		require.Error(t, err)
		assert.ErrorIs(t, err, capacity.ErrInsufficientCapacity)

		var insufficient *capacity.InsufficientCapacityError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, capacity.Amount(600_000), insufficient.Remaining)
		assert.Equal(t, capacity.Amount(400_000), c.Reserved())
	})

	t.Run("huge amount does not overflow", func(t *testing.T) {
		c := capacity.Reconstruct(partnerID, math.MaxInt64, 10)

		_, err := c.Commit(math.MaxInt64)
		assert.ErrorIs(t, err, capacity.ErrInsufficientCapacity)
		assert.Equal(t, capacity.Amount(10), c.Reserved())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		c := capacity.Reconstruct(partnerID, 100, 0)

		_, err := c.Commit(0)
		assert.ErrorIs(t, err, capacity.ErrInvalidAmount)
	})
}

func TestCapacityRelease(t *testing.T) {
	c := capacity.Reconstruct(uuid.New(), 1_000, 700)

	assert.False(t, c.Release(300))
	assert.Equal(t, capacity.Amount(400), c.Reserved())

	assert.True(t, c.Release(500))
	assert.Equal(t, capacity.Amount(0), c.Reserved())
	assert.Equal(t, capacity.Amount(1_000), c.Remaining())
}

func TestCapacityResize(t *testing.T) {
	tests := []struct {
		name        string
		newEnvelope capacity.Amount
		errIs       error
		remaining   capacity.Amount
	}{
		{name: "grow", newEnvelope: 2_000, remaining: 1_400},
		{name: "equal to reserved", newEnvelope: 600, remaining: 0},
		{name: "below reserved", newEnvelope: 599, errIs: capacity.ErrEnvelopeBelowCommitted},
		{name: "negative", newEnvelope: -1, errIs: capacity.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := capacity.Reconstruct(uuid.New(), 1_000, 600)

			err := c.Resize(tt.newEnvelope)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				assert.Equal(t, capacity.Amount(1_000), c.Envelope())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.remaining, c.Remaining())
		})
	}

	t.Run("below reserved reports reserved", func(t *testing.T) {
		c := capacity.Reconstruct(uuid.New(), 1_000, 600)

		var below *capacity.EnvelopeBelowCommittedError
		require.ErrorAs(t, c.Resize(100), &below)
		assert.Equal(t, capacity.Amount(600), below.Reserved)
	})
}

func TestAudit(t *testing.T) {
	ok := capacity.Audit{Envelope: 100, Reserved: 60, ActiveTotal: 60, ActiveCount: 2}
	assert.True(t, ok.Consistent())
	assert.Equal(t, capacity.Amount(0), ok.Drift())

	drifted := capacity.Audit{Envelope: 100, Reserved: 80, ActiveTotal: 60}
	assert.False(t, drifted.Consistent())
	assert.Equal(t, capacity.Amount(20), drifted.Drift())
}
