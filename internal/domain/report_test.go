package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func event(action string, at time.Time) Activity {
	return Activity{
		ActionableType: ActionableTypeStop,
		ActionableID:   1,
		DeviceID:       "device-1",
		Action:         action,
		CreatedAt:      at,
	}
}

func TestReconstructVisits(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fallback := DefaultSessionFallback

	tests := []struct {
		name        string
		events      []Activity
		wantVisits  int
		wantSeconds int64
	}{
		{
			name:        "no events",
			events:      nil,
			wantVisits:  0,
			wantSeconds: 0,
		},
		{
			name: "matched start and stop",
			events: []Activity{
				event(ActionStart, base),
				event(ActionStop, base.Add(5*time.Minute)),
			},
			wantVisits:  1,
			wantSeconds: 300,
		},
		{
			name: "two consecutive starts both get the fallback",
			events: []Activity{
				event(ActionStart, base),
				event(ActionStart, base.Add(10*time.Minute)),
			},
			wantVisits:  2,
			wantSeconds: 1200,
		},
		{
			name: "lone trailing stop earns nothing",
			events: []Activity{
				event(ActionStop, base),
			},
			wantVisits:  0,
			wantSeconds: 0,
		},
		{
			name: "orphaned stop mid-sequence gets the fallback",
			events: []Activity{
				event(ActionStop, base),
				event(ActionStop, base.Add(time.Minute)),
				event(ActionStart, base.Add(2*time.Minute)),
				event(ActionStop, base.Add(4*time.Minute)),
			},
			wantVisits:  1,
			wantSeconds: 600 + 120,
		},
		{
			name: "trailing unterminated start gets the fallback",
			events: []Activity{
				event(ActionStart, base),
				event(ActionStop, base.Add(3*time.Minute)),
				event(ActionStart, base.Add(10*time.Minute)),
			},
			wantVisits:  2,
			wantSeconds: 180 + 600,
		},
		{
			name: "two full visits",
			events: []Activity{
				event(ActionStart, base),
				event(ActionStop, base.Add(2*time.Minute)),
				event(ActionStart, base.Add(20*time.Minute)),
				event(ActionStop, base.Add(27*time.Minute)),
			},
			wantVisits:  2,
			wantSeconds: 120 + 420,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := ReconstructVisits(tt.events, fallback)

			assert.Equal(t, tt.wantVisits, summary.Visits)
			assert.Equal(t, tt.wantSeconds, int64(summary.TimeSpent.Seconds()))
		})
	}
}

func TestVisitSummary_Minutes(t *testing.T) {
	tests := []struct {
		name  string
		spent time.Duration
		want  int64
	}{
		{"zero", 0, 0},
		{"exact minutes", 5 * time.Minute, 5},
		{"rounds up past half", 150 * time.Second, 3},
		{"rounds down below half", 149 * time.Second, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := VisitSummary{TimeSpent: tt.spent}
			assert.Equal(t, tt.want, s.Minutes())
		})
	}
}

func TestReconstructVisits_CustomFallback(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	summary := ReconstructVisits([]Activity{
		event(ActionStart, base),
	}, 120*time.Second)

	assert.Equal(t, 1, summary.Visits)
	assert.Equal(t, int64(2), summary.Minutes())
}
