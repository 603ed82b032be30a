package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/metrics"
	"github.com/alithecoder24/Nuntius-ChannelTracker-sub000/internal/model"
)

var (
	// ErrChannelNotFound means the platform has no channel for the reference.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrUnavailable means the platform could not be queried (quota exhausted,
	// outage, transport failure); the channel may still exist.
	ErrUnavailable = errors.New("platform unavailable")
)

// Client wraps the YouTube Data API v3 for channel statistics reads.
type Client struct {
	svc *ytapi.Service
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ChannelByID fetches snippet and statistics for a canonical channel ID.
func (c *Client) ChannelByID(ctx context.Context, channelID string) (*model.ChannelStats, error) {
	start := time.Now()
	resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	recordUpstream("channels.list", start, err)
	if err != nil {
		return nil, classify("fetch channel", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("fetch channel %s: %w", channelID, ErrChannelNotFound)
	}
	return statsFromChannel(resp.Items[0]), nil
}

// ChannelIDByHandle resolves a "@handle" reference via the dedicated
// forHandle endpoint.
func (c *Client) ChannelIDByHandle(ctx context.Context, handle string) (string, error) {
	start := time.Now()
	resp, err := c.svc.Channels.List([]string{"id"}).
		ForHandle(handle).
		MaxResults(1).
		Context(ctx).
		Do()
	recordUpstream("channels.forHandle", start, err)
	if err != nil {
		return "", classify("resolve handle", err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("resolve handle %s: %w", handle, ErrChannelNotFound)
	}
	return resp.Items[0].Id, nil
}

// ChannelIDByUsername resolves a legacy username (youtube.com/user/...) or
// custom URL name via the forUsername endpoint.
func (c *Client) ChannelIDByUsername(ctx context.Context, username string) (string, error) {
	start := time.Now()
	resp, err := c.svc.Channels.List([]string{"id"}).
		ForUsername(username).
		MaxResults(1).
		Context(ctx).
		Do()
	recordUpstream("channels.forUsername", start, err)
	if err != nil {
		return "", classify("resolve username", err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("resolve username %s: %w", username, ErrChannelNotFound)
	}
	return resp.Items[0].Id, nil
}

// SearchChannelID finds a channel by free-text query and returns the first
// result's canonical ID.
func (c *Client) SearchChannelID(ctx context.Context, query string) (string, error) {
	start := time.Now()
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	recordUpstream("search.list", start, err)
	if err != nil {
		return "", classify("search channel", err)
	}
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.ChannelId != "" {
			return item.Id.ChannelId, nil
		}
	}
	return "", fmt.Errorf("search %q: %w", query, ErrChannelNotFound)
}

func recordUpstream(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.Metrics.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
	metrics.Metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
}

// classify maps an upstream API error onto the tracker's error taxonomy.
// Callers must be able to distinguish "does not exist" from "could not ask".
func classify(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 400 || gerr.Code == 404 {
			return fmt.Errorf("%s: %w", op, ErrChannelNotFound)
		}
		return fmt.Errorf("%s: upstream status %d: %w", op, gerr.Code, ErrUnavailable)
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
}

func statsFromChannel(ch *ytapi.Channel) *model.ChannelStats {
	stats := &model.ChannelStats{ChannelID: ch.Id}

	if ch.Snippet != nil {
		stats.Title = ch.Snippet.Title
		stats.Description = ch.Snippet.Description
		stats.Country = ch.Snippet.Country
		stats.CustomURL = ch.Snippet.CustomUrl
		// Modern custom URLs are handle-based ("@name").
		if strings.HasPrefix(ch.Snippet.CustomUrl, "@") {
			stats.Handle = ch.Snippet.CustomUrl
		}
		stats.ThumbnailURL = bestThumbnail(ch.Snippet.Thumbnails)
	}

	if ch.Statistics != nil {
		// Hidden subscriber counts come back as zero.
		stats.SubscriberCount = int64(ch.Statistics.SubscriberCount)
		stats.ViewCount = int64(ch.Statistics.ViewCount)
		stats.VideoCount = int64(ch.Statistics.VideoCount)
	}

	return stats
}

func bestThumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	switch {
	case t.High != nil:
		return t.High.Url
	case t.Medium != nil:
		return t.Medium.Url
	case t.Default != nil:
		return t.Default.Url
	}
	return ""
}
