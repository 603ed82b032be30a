package model

import "time"

// Snapshot is one immutable statistics observation for a channel.
// Rows are append-only; growth is computed from them after the fact.
type Snapshot struct {
	ID              int64     `json:"-"`
	ChannelID       string    `json:"channelId"`
	SubscriberCount int64     `json:"subscriberCount"`
	ViewCount       int64     `json:"viewCount"`
	VideoCount      int64     `json:"videoCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// GrowthResult is the computed growth for a single metric over one window.
type GrowthResult struct {
	Delta     int64  `json:"delta"`
	Formatted string `json:"formatted"`
}

// GrowthSummary groups per-metric growth for one lookback window.
type GrowthSummary struct {
	Subscribers GrowthResult `json:"subscribers"`
	Views       GrowthResult `json:"views"`
}
