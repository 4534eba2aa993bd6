package donation

import "time"

// Tag discriminates the donation lifecycle states
type Tag string

const (
	TagPending   Tag = "PENDING"
	TagCompleted Tag = "COMPLETED"
	TagFailed    Tag = "FAILED"
	TagRefunded  Tag = "REFUNDED"
)

// Donation is one of Pending, Completed, Failed or Refunded.
// Failed and Refunded are terminal.
type Donation interface {
	Tag() Tag
	ID() ID
	UserID() string
	Amount() Amount
	StripePaymentIntentID() *string
	Metadata() map[string]any
	CreatedAt() time.Time

	sealed()
}

type core struct {
	id                    ID
	userID                string
	amount                Amount
	stripePaymentIntentID *string
	metadata              map[string]any
	createdAt             time.Time
}

func (c core) ID() ID               { return c.id }
func (c core) UserID() string       { return c.userID }
func (c core) Amount() Amount       { return c.amount }
func (c core) CreatedAt() time.Time { return c.createdAt }
func (core) sealed()                {}

func (c core) StripePaymentIntentID() *string { return copyString(c.stripePaymentIntentID) }

// Metadata returns a deep copy; nil when no metadata was supplied
func (c core) Metadata() map[string]any { return cloneMetadata(c.metadata) }

type Pending struct {
	core
}

func (Pending) Tag() Tag { return TagPending }

type Completed struct {
	core
	completedAt time.Time
}

func (Completed) Tag() Tag                 { return TagCompleted }
func (c Completed) CompletedAt() time.Time { return c.completedAt }

type Failed struct {
	core
	failedAt      time.Time
	failureReason string
}

func (Failed) Tag() Tag                { return TagFailed }
func (f Failed) FailedAt() time.Time   { return f.failedAt }
func (f Failed) FailureReason() string { return f.failureReason }

type Refunded struct {
	core
	completedAt    time.Time
	refundedAt     time.Time
	refundReason   *string
	stripeRefundID string
}

func (Refunded) Tag() Tag                 { return TagRefunded }
func (r Refunded) CompletedAt() time.Time { return r.completedAt }
func (r Refunded) RefundedAt() time.Time  { return r.refundedAt }
func (r Refunded) RefundReason() *string  { return copyString(r.refundReason) }
func (r Refunded) StripeRefundID() string { return r.stripeRefundID }

func IsPending(d Donation) bool {
	_, ok := d.(Pending)
	return ok
}

func IsCompleted(d Donation) bool {
	_, ok := d.(Completed)
	return ok
}

func IsFailed(d Donation) bool {
	_, ok := d.(Failed)
	return ok
}

func IsRefunded(d Donation) bool {
	_, ok := d.(Refunded)
	return ok
}

// IsTerminal reports whether no transition leaves d's state
func IsTerminal(d Donation) bool {
	return IsFailed(d) || IsRefunded(d)
}

func AsPending(d Donation) (Pending, bool) {
	p, ok := d.(Pending)
	return p, ok
}

func AsCompleted(d Donation) (Completed, bool) {
	c, ok := d.(Completed)
	return c, ok
}

// Restore* rebuild states from storage for the persistence mappers only.
// They skip every workflow rule; state changes go through Create, Complete, Fail and Refund.

func RestorePending(id ID, userID string, amount Amount, stripePaymentIntentID *string, metadata map[string]any, createdAt time.Time) Pending {
	return Pending{core: core{
		id:                    id,
		userID:                userID,
		amount:                amount,
		stripePaymentIntentID: copyString(stripePaymentIntentID),
		metadata:              cloneMetadata(metadata),
		createdAt:             createdAt,
	}}
}

func RestoreCompleted(p Pending, completedAt time.Time) Completed {
	return Completed{core: p.core, completedAt: completedAt}
}

func RestoreFailed(p Pending, failedAt time.Time, reason string) Failed {
	return Failed{core: p.core, failedAt: failedAt, failureReason: reason}
}

func RestoreRefunded(c Completed, refundedAt time.Time, stripeRefundID string, reason *string) Refunded {
	return Refunded{
		core:           c.core,
		completedAt:    c.completedAt,
		refundedAt:     refundedAt,
		refundReason:   copyString(reason),
		stripeRefundID: stripeRefundID,
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// cloneMetadata copies nested maps and slices so no caller shares them with a state value
func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMetadata(x)
	case []any:
		if x == nil {
			return x
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
