package capacity

import "strconv"

// Amount is a quantity of money in integer minor currency units (cents).
type Amount int64

// NewAmount validates a reservation amount, which must be strictly positive.
func NewAmount(minor int64) (Amount, error) {
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}
	return Amount(minor), nil
}

// NewEnvelope validates an envelope size. Zero is a valid (closed) envelope.
func NewEnvelope(minor int64) (Amount, error) {
	if minor < 0 {
		return 0, ErrInvalidAmount
	}
	return Amount(minor), nil
}

func (a Amount) Minor() int64 {
	return int64(a)
}

func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10)
}
