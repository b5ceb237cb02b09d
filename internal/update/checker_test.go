package update

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestIsNewerTrue(t *testing.T) {
	if !isNewer("v0.4.0", "v0.3.0") {
		t.Error("v0.4.0 should be newer than v0.3.0")
	}
}

func TestIsNewerFalse(t *testing.T) {
	if isNewer("v0.3.0", "v0.3.0") {
		t.Error("same version should not be newer")
	}
}

func TestIsNewerOlder(t *testing.T) {
	if isNewer("v0.2.0", "v0.3.0") {
		t.Error("v0.2.0 should not be newer than v0.3.0")
	}
}

func TestIsNewerDev(t *testing.T) {
	if isNewer("v1.0.0", "dev") {
		t.Error("dev builds should not get update notices")
	}
}

func TestIsNewerEmpty(t *testing.T) {
	if isNewer("v1.0.0", "") {
		t.Error("empty version should not get update notices")
	}
}

func TestCheckLatestUpToDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ReleaseInfo{
			Version:     "v0.3.0",
			PublishedAt: time.Now(),
			HTMLURL:     "https://github.com/klytics/numsay/releases/tag/v0.3.0",
		})
	}))
	defer server.Close()

	oldBase := apiBase
	apiBase = server.URL
	defer func() { apiBase = oldBase }()

	release, err := CheckLatest("v0.3.0")
	if err != nil {
		t.Fatalf("CheckLatest: %v", err)
	}
	if release != nil {
		t.Errorf("same version should report up to date, got %+v", release)
	}
}

func TestCheckLatestNewVersionAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ReleaseInfo{
			Version:     "v0.4.0",
			PublishedAt: time.Now(),
			HTMLURL:     "https://github.com/klytics/numsay/releases/tag/v0.4.0",
		})
	}))
	defer server.Close()

	oldBase := apiBase
	apiBase = server.URL
	defer func() { apiBase = oldBase }()

	release, err := CheckLatest("v0.3.0")
	if err != nil {
		t.Fatalf("CheckLatest: %v", err)
	}
	if release == nil {
		t.Fatal("should detect newer version")
	}
	if release.Version != "v0.4.0" {
		t.Errorf("expected v0.4.0, got %s", release.Version)
	}
}

func TestCheckLatest404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	oldBase := apiBase
	apiBase = server.URL
	defer func() { apiBase = oldBase }()

	release, err := CheckLatest("v0.3.0")
	if err != nil {
		t.Fatalf("404 should not be an error: %v", err)
	}
	if release != nil {
		t.Error("no releases should report nothing to update")
	}
}

func TestCheckLatestRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	oldBase := apiBase
	apiBase = server.URL
	defer func() { apiBase = oldBase }()

	_, err := CheckLatest("v0.3.0")
	if err == nil {
		t.Fatal("rate limit should surface an error")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("expected a rate limit error, got: %v", err)
	}
}

func TestFormatUpdateNotice(t *testing.T) {
	release := &ReleaseInfo{
		Version:     "v0.4.0",
		PublishedAt: time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC),
		HTMLURL:     "https://github.com/klytics/numsay/releases/tag/v0.4.0",
		Body:        "## What's New\n- Lexicon packs\n- Watch daemon",
	}

	notice := FormatUpdateNotice("v0.3.0", release)
	if !strings.Contains(notice, "v0.3.0") {
		t.Error("should contain current version")
	}
	if !strings.Contains(notice, "v0.4.0") {
		t.Error("should contain new version")
	}
	if !strings.Contains(notice, "go install") {
		t.Error("should contain upgrade instructions")
	}
}

func TestShouldCheckNoFile(t *testing.T) {
	// When no last_check file exists, should check
	t.Setenv("HOME", t.TempDir())
	if !shouldCheck() {
		t.Error("should check when no last_check file exists")
	}
}

func TestShouldCheckRecent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	saveLastCheck()
	if shouldCheck() {
		t.Error("should not re-check within the cooldown window")
	}
}
