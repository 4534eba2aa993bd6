package donation

import (
	"math"
	"strings"

	"churchhub/internal/core/domain"

	"github.com/google/uuid"
)

// ID identifies a donation
type ID struct {
	value string
}

func NewID() ID {
	return ID{value: uuid.NewString()}
}

func ParseID(raw string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ID{}, domain.NewValidationError("Donation ID must be a valid UUID", "donationId")
	}
	return ID{value: u.String()}, nil
}

func (id ID) String() string { return id.value }

const (
	MinAmount int64 = 100
	MaxAmount int64 = 10_000_000
)

// Amount is a donation amount in the smallest currency unit
type Amount struct {
	value int64
}

func NewAmount(v int64) (Amount, error) {
	if v < MinAmount || v > MaxAmount {
		return Amount{}, amountError()
	}
	return Amount{value: v}, nil
}

// AmountFromFloat accepts a decoded JSON number. NaN, infinities and fractions are rejected.
func AmountFromFloat(v float64) (Amount, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return Amount{}, amountError()
	}
	if v < float64(MinAmount) || v > float64(MaxAmount) {
		return Amount{}, amountError()
	}
	return Amount{value: int64(v)}, nil
}

func amountError() *domain.ValidationError {
	return domain.NewValidationError("Amount must be an integer between 100 and 10000000", "amount")
}

func (a Amount) Int64() int64 { return a.value }
