package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"1.10.0", "1.9.3", true},
		{"1.2.3", "1.2.3", false},
		{"1.2.3", "1.2.3-dirty", false},
		{"v2.0.0", "1.99.99", true},
		{"1.0.0", "1.0.1", false},
	}
	for _, tt := range tests {
		if got := Newer(tt.latest, tt.current); got != tt.want {
			t.Errorf("Newer(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
		}
	}
}

func TestLatestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name": "v1.4.0"}`)
	}))
	defer srv.Close()

	old := ReleasesURL
	ReleasesURL = srv.URL
	defer func() { ReleasesURL = old }()

	got, err := LatestVersion(context.Background(), srv.Client())
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if got != "1.4.0" {
		t.Errorf("got %q", got)
	}
}

func TestFormatVersion(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldV, oldC, oldB }()

	Version, Commit, BuildTime = "1.0.0", "", ""
	if got := FormatVersion(); got != "1.0.0 (development)" {
		t.Errorf("got %q", got)
	}

	Commit, BuildTime = "abc1234", "2025-01-01T00:00:00Z"
	if got := FormatVersion(); !strings.Contains(got, "commit: abc1234") || !strings.Contains(got, "built at") {
		t.Errorf("got %q", got)
	}
}
