package capacity

import (
	"github.com/google/uuid"
)

// Capacity is a partner's envelope and the sum of its active reservations.
// Both store back-ends load it, apply one of the operations below, and persist
// the result inside the same per-partner critical section.
type Capacity struct {
	partnerID uuid.UUID
	envelope  Amount
	reserved  Amount
}

// CommitToken identifies a successful admission.
type CommitToken struct {
	PartnerID uuid.UUID
	Amount    Amount
}

type Snapshot struct {
	PartnerID uuid.UUID
	Envelope  Amount
	Reserved  Amount
	Remaining Amount
}

// Audit compares the persisted reserved amount with the sum of active reservations.
type Audit struct {
	PartnerID   uuid.UUID
	Envelope    Amount
	Reserved    Amount
	ActiveTotal Amount
	ActiveCount int
}

func (a Audit) Drift() Amount {
	return a.Reserved - a.ActiveTotal
}

func (a Audit) Consistent() bool {
	return a.Reserved == a.ActiveTotal && a.ActiveTotal <= a.Envelope
}

func Reconstruct(partnerID uuid.UUID, envelope, reserved Amount) *Capacity {
	return &Capacity{
		partnerID: partnerID,
		envelope:  envelope,
		reserved:  reserved,
	}
}

func (c *Capacity) PartnerID() uuid.UUID { return c.partnerID }
func (c *Capacity) Envelope() Amount     { return c.envelope }
func (c *Capacity) Reserved() Amount     { return c.reserved }

func (c *Capacity) Remaining() Amount {
	return c.envelope - c.reserved
}

// Commit admits amount if it fits in the remaining capacity.
// The comparison is done against envelope-reserved so it cannot overflow.
func (c *Capacity) Commit(amount Amount) (CommitToken, error) {
	if amount <= 0 {
		return CommitToken{}, ErrInvalidAmount
	}
	remaining := c.Remaining()
	if amount > remaining {
		return CommitToken{}, &InsufficientCapacityError{Remaining: remaining}
	}
	c.reserved += amount
	return CommitToken{PartnerID: c.partnerID, Amount: amount}, nil
}

// Release returns amount to the envelope. It reports true when the release
// would have driven reserved below zero and was clamped instead.
func (c *Capacity) Release(amount Amount) bool {
	if amount > c.reserved {
		c.reserved = 0
		return true
	}
	c.reserved -= amount
	return false
}

func (c *Capacity) Resize(newEnvelope Amount) error {
	if newEnvelope < 0 {
		return ErrInvalidAmount
	}
	if newEnvelope < c.reserved {
		return &EnvelopeBelowCommittedError{Reserved: c.reserved}
	}
	c.envelope = newEnvelope
	return nil
}

func (c *Capacity) Snapshot() Snapshot {
	return Snapshot{
		PartnerID: c.partnerID,
		Envelope:  c.envelope,
		Reserved:  c.reserved,
		Remaining: c.Remaining(),
	}
}
