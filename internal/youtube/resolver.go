package youtube

import (
	"context"
	"errors"
	"strings"
)

// RefKind classifies a channel reference.
type RefKind int

const (
	RefChannelID RefKind = iota
	RefHandle
	RefCustomURL
)

// resolveAPI is the slice of Client the resolver needs.
type resolveAPI interface {
	ChannelIDByHandle(ctx context.Context, handle string) (string, error)
	ChannelIDByUsername(ctx context.Context, username string) (string, error)
	SearchChannelID(ctx context.Context, query string) (string, error)
}

// Resolver turns loose channel references (IDs, handles, custom URLs, full
// channel page URLs) into canonical channel IDs.
type Resolver struct {
	api resolveAPI
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{api: client}
}

// Resolve returns the canonical channel ID for a reference. A reference
// already in canonical form is returned unchanged with no network call.
// Handles resolve through search first, then the forHandle endpoint;
// custom URLs try the legacy forUsername endpoint, then search.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	kind, value := Classify(ref)
	switch kind {
	case RefChannelID:
		return value, nil
	case RefHandle:
		id, err := r.api.SearchChannelID(ctx, value)
		if errors.Is(err, ErrChannelNotFound) {
			return r.api.ChannelIDByHandle(ctx, value)
		}
		return id, err
	default:
		id, err := r.api.ChannelIDByUsername(ctx, value)
		if errors.Is(err, ErrChannelNotFound) {
			return r.api.SearchChannelID(ctx, value)
		}
		return id, err
	}
}

// Classify normalizes a raw reference and reports what kind of identifier
// it is. Full YouTube URLs are reduced to their identifying segment first.
func Classify(ref string) (RefKind, string) {
	ref = stripURL(strings.TrimSpace(ref))

	switch {
	case IsChannelID(ref):
		return RefChannelID, ref
	case strings.HasPrefix(ref, "@"):
		return RefHandle, "@" + strings.TrimLeft(ref, "@")
	default:
		return RefCustomURL, ref
	}
}

// IsChannelID reports whether ref is a canonical 24-character channel ID
// ("UC" prefix over [A-Za-z0-9_-]).
func IsChannelID(ref string) bool {
	if len(ref) != 24 || !strings.HasPrefix(ref, "UC") {
		return false
	}
	for _, r := range ref {
		ok := r >= 'A' && r <= 'Z' ||
			r >= 'a' && r <= 'z' ||
			r >= '0' && r <= '9' ||
			r == '_' || r == '-'
		if !ok {
			return false
		}
	}
	return true
}

// stripURL reduces a full YouTube channel URL to its identifying segment
// ("/channel/UC..." -> ID, "/@name" -> handle, "/c/Name" and "/user/Name"
// -> custom name). Non-URL references pass through unchanged.
func stripURL(ref string) string {
	idx := strings.Index(strings.ToLower(ref), "youtube.com/")
	if idx < 0 {
		return ref
	}
	rest := ref[idx+len("youtube.com/"):]

	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	for _, prefix := range []string{"channel/", "c/", "user/"} {
		if strings.HasPrefix(rest, prefix) {
			rest = rest[len(prefix):]
			break
		}
	}
	// Drop trailing path segments like /videos or /about.
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
