package usage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/consultkit/consultkit/internal/domain/plan"
)

func TestNewQuota(t *testing.T) {
	period := Period{
		Start: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name          string
		access        plan.Access
		used          int
		wantRemaining int
		wantExhausted bool
		wantUnlimited bool
	}{
		{"denied", plan.Access{}, 0, 0, false, false},
		{"unlimited", plan.Access{Allowed: true}, 120, 0, false, true},
		{"room left", plan.Access{Allowed: true, Limit: 5}, 3, 2, false, false},
		{"exactly used up", plan.Access{Allowed: true, Limit: 5}, 5, 0, true, false},
		{"over the limit after a downgrade", plan.Access{Allowed: true, Limit: 5}, 9, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuota("swot-analysis", tt.access, tt.used, period)

			assert.Equal(t, tt.access.Allowed, q.HasAccess)
			assert.Equal(t, tt.wantRemaining, q.Remaining)
			assert.Equal(t, tt.wantExhausted, q.Exhausted())
			assert.Equal(t, tt.wantUnlimited, q.Unlimited)
			assert.Equal(t, period.Start, q.PeriodStart)
		})
	}
}
