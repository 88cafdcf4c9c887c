package policy

import (
	"context"

	"musicstudio/internal/domain"
)

// PolicyRepository loads active tiers ordered by hours_before_booking ascending.
type PolicyRepository interface {
	ListActiveByType(ctx context.Context, t domain.PolicyType) ([]domain.CancellationPolicy, error)
}
