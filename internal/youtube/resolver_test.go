package youtube

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		wantKind RefKind
		wantVal  string
	}{
		{"canonical id", "UCX6OQ3DkcsbYNE6H8uQQuVA", RefChannelID, "UCX6OQ3DkcsbYNE6H8uQQuVA"},
		{"handle", "@mrbeast", RefHandle, "@mrbeast"},
		{"doubled at normalized", "@@mrbeast", RefHandle, "@mrbeast"},
		{"plain custom name", "pewdiepie", RefCustomURL, "pewdiepie"},
		{"channel url", "https://www.youtube.com/channel/UCX6OQ3DkcsbYNE6H8uQQuVA", RefChannelID, "UCX6OQ3DkcsbYNE6H8uQQuVA"},
		{"handle url with tab", "https://youtube.com/@veritasium/videos", RefHandle, "@veritasium"},
		{"legacy c url", "youtube.com/c/PewDiePie", RefCustomURL, "PewDiePie"},
		{"user url", "https://www.youtube.com/user/Vsauce", RefCustomURL, "Vsauce"},
		{"url with query string", "https://www.youtube.com/@veritasium?si=abc123", RefHandle, "@veritasium"},
		{"surrounding whitespace", "  @handle  ", RefHandle, "@handle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, val := Classify(tt.ref)
			if kind != tt.wantKind || val != tt.wantVal {
				t.Errorf("Classify(%q) = (%v, %q), want (%v, %q)", tt.ref, kind, val, tt.wantKind, tt.wantVal)
			}
		})
	}
}

func TestIsChannelID(t *testing.T) {
	if !IsChannelID("UCX6OQ3DkcsbYNE6H8uQQuVA") {
		t.Error("valid 24-char UC id should classify as channel ID")
	}
	if IsChannelID("UCtooShort") {
		t.Error("short string should not classify as channel ID")
	}
	if IsChannelID("ABX6OQ3DkcsbYNE6H8uQQuVA") {
		t.Error("id without UC prefix should not classify as channel ID")
	}
	if IsChannelID("UCX6OQ3Dkcsb!NE6H8uQQuVA") {
		t.Error("id with illegal character should not classify as channel ID")
	}
}

type fakeResolveAPI struct {
	searchID      string
	searchErr     error
	handleID      string
	handleErr     error
	usernameID    string
	usernameErr   error
	searchCalls   int
	handleCalls   int
	usernameCalls int
}

func (f *fakeResolveAPI) SearchChannelID(_ context.Context, _ string) (string, error) {
	f.searchCalls++
	return f.searchID, f.searchErr
}

func (f *fakeResolveAPI) ChannelIDByHandle(_ context.Context, _ string) (string, error) {
	f.handleCalls++
	return f.handleID, f.handleErr
}

func (f *fakeResolveAPI) ChannelIDByUsername(_ context.Context, _ string) (string, error) {
	f.usernameCalls++
	return f.usernameID, f.usernameErr
}

func TestResolve_CanonicalIDSkipsNetwork(t *testing.T) {
	api := &fakeResolveAPI{searchErr: ErrUnavailable, handleErr: ErrUnavailable, usernameErr: ErrUnavailable}
	r := &Resolver{api: api}

	id, err := r.Resolve(context.Background(), "UCX6OQ3DkcsbYNE6H8uQQuVA")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if id != "UCX6OQ3DkcsbYNE6H8uQQuVA" {
		t.Errorf("id = %s, want unchanged canonical id", id)
	}
	if api.searchCalls+api.handleCalls+api.usernameCalls != 0 {
		t.Error("canonical id resolution must not hit the platform")
	}
}

func TestResolve_HandleUsesSearchFirst(t *testing.T) {
	api := &fakeResolveAPI{searchID: "UCX6OQ3DkcsbYNE6H8uQQuVA"}
	r := &Resolver{api: api}

	id, err := r.Resolve(context.Background(), "@mrbeast")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if id != "UCX6OQ3DkcsbYNE6H8uQQuVA" {
		t.Errorf("id = %s, want search result", id)
	}
	if api.searchCalls != 1 || api.handleCalls != 0 {
		t.Errorf("calls = search %d, handle %d; want search only", api.searchCalls, api.handleCalls)
	}
}

func TestResolve_HandleFallsBackToForHandle(t *testing.T) {
	api := &fakeResolveAPI{
		searchErr: fmt.Errorf("search @x: %w", ErrChannelNotFound),
		handleID:  "UCX6OQ3DkcsbYNE6H8uQQuVA",
	}
	r := &Resolver{api: api}

	id, err := r.Resolve(context.Background(), "@mrbeast")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if id != "UCX6OQ3DkcsbYNE6H8uQQuVA" {
		t.Errorf("id = %s, want forHandle result", id)
	}
	if api.searchCalls != 1 || api.handleCalls != 1 {
		t.Errorf("calls = search %d, handle %d; want both", api.searchCalls, api.handleCalls)
	}
}

func TestResolve_UnavailableIsNotNotFound(t *testing.T) {
	api := &fakeResolveAPI{
		searchErr: fmt.Errorf("search: %w", ErrUnavailable),
		handleID:  "UCX6OQ3DkcsbYNE6H8uQQuVA",
	}
	r := &Resolver{api: api}

	_, err := r.Resolve(context.Background(), "@mrbeast")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if api.handleCalls != 0 {
		t.Error("an outage must not trigger the not-found fallback")
	}
}

func TestResolve_CustomURLTriesUsernameThenSearch(t *testing.T) {
	api := &fakeResolveAPI{
		usernameErr: fmt.Errorf("resolve username: %w", ErrChannelNotFound),
		searchID:    "UC-lHJZR3Gqxm24_Vd_AJ5Yw",
	}
	r := &Resolver{api: api}

	id, err := r.Resolve(context.Background(), "pewdiepie")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if id != "UC-lHJZR3Gqxm24_Vd_AJ5Yw" {
		t.Errorf("id = %s, want search result", id)
	}
	if api.usernameCalls != 1 || api.searchCalls != 1 {
		t.Errorf("calls = username %d, search %d; want both", api.usernameCalls, api.searchCalls)
	}
}
