package model

import "time"

// ChannelStats is the cached statistics entry for a single channel,
// keyed by its canonical channel ID.
type ChannelStats struct {
	ChannelID       string    `json:"channelId"`
	Handle          string    `json:"handle,omitempty"`
	CustomURL       string    `json:"customUrl,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"-"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	Country         string    `json:"country,omitempty"`
	SubscriberCount int64     `json:"subscriberCount"`
	ViewCount       int64     `json:"viewCount"`
	VideoCount      int64     `json:"videoCount"`
	CachedAt        time.Time `json:"cachedAt"`
}

// FormattedCounts carries the abbreviated display strings for the current counts.
type FormattedCounts struct {
	Subscribers string `json:"subscribers"`
	Views       string `json:"views"`
	Videos      string `json:"videos"`
}

// LookupResponse is the API response for a channel lookup.
type LookupResponse struct {
	Stats           ChannelStats    `json:"stats"`
	Growth48h       GrowthSummary   `json:"growth48h"`
	Growth28d       GrowthSummary   `json:"growth28d"`
	FormattedCounts FormattedCounts `json:"formattedCounts"`
	FromCache       bool            `json:"fromCache"`
}
