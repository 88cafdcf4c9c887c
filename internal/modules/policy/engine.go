package policy

import (
	"context"
	"log"
	"math"
	"time"

	"musicstudio/internal/domain"
)

// MinRescheduleNoticeHours is the hard cutoff below which rescheduling is
// refused outright, regardless of the fee table. Cancellation has no such
// cutoff: a 0% tier still lets the cancellation proceed.
const MinRescheduleNoticeHours = 8.0

// Evaluation is the outcome of running a booking against the policy table.
// Amount is the refund (cancellation) or fee (rescheduling) in money terms.
type Evaluation struct {
	Allowed           bool    `json:"allowed"`
	Percentage        float64 `json:"percentage"`
	Amount            float64 `json:"amount"`
	PolicyDescription string  `json:"policy_description"`
	HoursUntilBooking float64 `json:"hours_until_booking"`
}

type Engine struct {
	policies PolicyRepository

	minRescheduleNotice float64
}

func NewEngine(policies PolicyRepository, minRescheduleNoticeHours float64) *Engine {
	if minRescheduleNoticeHours <= 0 {
		minRescheduleNoticeHours = MinRescheduleNoticeHours
	}
	return &Engine{
		policies:            policies,
		minRescheduleNotice: minRescheduleNoticeHours,
	}
}

// Evaluate computes the refund or fee for acting on a booking at the instant
// "now". Lead time stays fractional: tier thresholds are hour marks and a
// booking 23.5 hours out must not round up into the 24-hour tier.
func (e *Engine) Evaluate(ctx context.Context, kind domain.PolicyType, totalAmount float64, scheduledStart, now time.Time) (*Evaluation, error) {
	lead := scheduledStart.Sub(now).Hours()

	if kind == domain.PolicyRescheduling && lead < e.minRescheduleNotice {
		return &Evaluation{
			Allowed:           false,
			HoursUntilBooking: lead,
		}, nil
	}

	tiers, err := e.policies.ListActiveByType(ctx, kind)
	if err != nil {
		return nil, err
	}

	tier, ok := selectTier(tiers, lead)
	if !ok {
		return nil, ErrNoPolicy
	}

	amount := math.Round(totalAmount*tier.Percentage) / 100
	return &Evaluation{
		Allowed:           true,
		Percentage:        tier.Percentage,
		Amount:            amount,
		PolicyDescription: tier.Description,
		HoursUntilBooking: lead,
	}, nil
}

// selectTier picks the tightest enclosing tier: the largest
// hours_before_booking that does not exceed the lead time. Tiers arrive
// ordered ascending, so the last satisfying tier wins. Duplicate thresholds
// are a data-integrity wart; the first one by id is kept, with a warning.
func selectTier(tiers []domain.CancellationPolicy, leadHours float64) (domain.CancellationPolicy, bool) {
	var (
		best  domain.CancellationPolicy
		found bool
	)
	for _, t := range tiers {
		if t.HoursBeforeBooking > leadHours {
			continue
		}
		if found && t.HoursBeforeBooking == best.HoursBeforeBooking {
			log.Printf("policy_tier_duplicate policy_type=%s hours=%v kept_id=%d ignored_id=%d",
				t.PolicyType, t.HoursBeforeBooking, best.ID, t.ID)
			continue
		}
		best = t
		found = true
	}
	return best, found
}
