package domain

import (
	"math"
	"time"
)

// DefaultSessionFallback is the dwell time credited to a tracking
// event with no matching counterpart: an orphaned start, an orphaned
// stop mid-sequence, or an unterminated trailing start. Tunable via
// config; the reconstruction itself takes it as a parameter.
const DefaultSessionFallback = 600 * time.Second

// StopOverview is one row of the stop overview report.
type StopOverview struct {
	ID      int64  `json:"id"`
	Order   int    `json:"order"`
	Title   string `json:"title"`
	Time    int64  `json:"time"`
	Visits  int    `json:"visits"`
	Actions int64  `json:"actions"`
}

// StopOverviewReport is the full per-tour report: one row per stop,
// in the tour's stop order, including stops with no activity at all.
type StopOverviewReport struct {
	Stops []StopOverview `json:"stops"`
}

// VisitSummary is the result of reconstructing visit sessions from a
// stop's raw event sequence.
type VisitSummary struct {
	Visits    int
	TimeSpent time.Duration
}

// Minutes returns the total dwell time in whole minutes, rounded.
func (s VisitSummary) Minutes() int64 {
	return int64(math.Round(s.TimeSpent.Minutes()))
}

// ReconstructVisits walks a stop's events pairwise and reconstructs
// visit count and total dwell time. Events must already be sorted by
// device then by timestamp ascending.
//
// A start immediately followed by a stop is credited the exact
// difference. Two consecutive starts, or two consecutive stops, are
// lost or duplicated tracking events and credit the fallback for the
// orphan. A trailing start with no stop after it also credits the
// fallback; a trailing stop credits nothing. Every start counts one
// visit, however it resolves.
func ReconstructVisits(events []Activity, fallback time.Duration) VisitSummary {
	var summary VisitSummary

	for i := range events {
		if events[i].Action == ActionStart {
			summary.Visits++
		}

		if i == len(events)-1 {
			if events[i].Action == ActionStart {
				summary.TimeSpent += fallback
			}
			continue
		}

		switch {
		case events[i].Action == ActionStart && events[i+1].Action == ActionStart:
			summary.TimeSpent += fallback
		case events[i].Action == ActionStop && events[i+1].Action == ActionStop:
			summary.TimeSpent += fallback
		case events[i].Action == ActionStart && events[i+1].Action == ActionStop:
			summary.TimeSpent += events[i+1].CreatedAt.Sub(events[i].CreatedAt)
		}
	}

	return summary
}
