package model

import "time"

// Trigger values recorded with a sweep run.
const (
	SweepTriggerScheduled = "scheduled"
	SweepTriggerManual    = "manual"
)

// SweepReport summarizes one full refresh sweep over every tracked channel.
type SweepReport struct {
	ID         int64     `json:"-"`
	Trigger    string    `json:"trigger"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// OverviewResponse is the API response for engine-level statistics.
type OverviewResponse struct {
	TrackedChannels int64        `json:"trackedChannels"`
	TotalSnapshots  int64        `json:"totalSnapshots"`
	LastSweep       *SweepReport `json:"lastSweep"`
}
