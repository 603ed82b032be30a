package middleware

import (
	"strings"
	"testing"
)

func TestValidateChannelRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"canonical id", "UCX6OQ3DkcsbYNE6H8uQQuVA", "UCX6OQ3DkcsbYNE6H8uQQuVA", false},
		{"handle", "@mkbhd", "@mkbhd", false},
		{"custom url name", "PewDiePie", "PewDiePie", false},
		{"full url", "https://www.youtube.com/@mkbhd", "https://www.youtube.com/@mkbhd", false},
		{"trims whitespace", "  @mkbhd  ", "@mkbhd", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"exactly 128", strings.Repeat("a", 128), strings.Repeat("a", 128), false},
		{"too long 129", strings.Repeat("a", 129), "", true},
		{"embedded newline", "@mk\nbhd", "", true},
		{"null byte", "@mk\x00bhd", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelRef(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
