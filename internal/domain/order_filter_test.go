package domain_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/ordercore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderFilter_EffectiveLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero uses default: ok", limit: 0, want: domain.DefaultOrderFilterLimit},
		{name: "explicit limit: ok", limit: 5, want: 5},
		{name: "at the cap: ok", limit: domain.MaxOrderFilterLimit, want: domain.MaxOrderFilterLimit},
		{name: "above the cap is clamped: ok", limit: domain.MaxOrderFilterLimit + 1, want: domain.MaxOrderFilterLimit},
		{name: "limit overflows int32 is clamped: ok", limit: math.MaxInt32 + 1, want: domain.MaxOrderFilterLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := domain.OrderFilter{CustomerIDs: []uuid.UUID{uuid.New()}, Limit: tt.limit}

			assert.NoError(t, filter.Validate())
			assert.Equal(t, tt.want, filter.EffectiveLimit())
		})
	}
}
