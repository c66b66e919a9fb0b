package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewerThan(t *testing.T) {
	tests := []struct {
		tag     string
		current string
		newer   bool
	}{
		{"v0.1.0", "v0.2.0", false},
		{"v0.2.0", "v0.2.0", false},
		{"v0.2.3", "v0.2.0", true},
		{"v1.1.0", "v0.2.0", true},
		{"0.3.0", "v0.2.0", true},
	}
	for _, tt := range tests {
		release := &Release{TagName: tt.tag}
		newer, err := release.NewerThan(tt.current)
		require.NoError(t, err, "%s vs %s", tt.tag, tt.current)
		assert.Equal(t, tt.newer, newer, "%s vs %s", tt.tag, tt.current)
	}
}

func TestNewerThanRejectsGarbageTag(t *testing.T) {
	release := &Release{TagName: "nightly"}
	_, err := release.NewerThan("v0.2.0")
	assert.Error(t, err)
}

func TestLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, "syspass-cli", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{
			"html_url": "https://github.com/vaultops/syspass-cli/releases/tag/v0.2.0",
			"tag_name": "v0.2.0",
			"published_at": "2023-08-07T15:10:28Z"
		}`))
	}))
	defer srv.Close()

	checker := &Checker{httpClient: srv.Client(), url: srv.URL}
	release, err := checker.Latest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "v0.2.0", release.TagName)
	assert.Equal(t, "https://github.com/vaultops/syspass-cli/releases/tag/v0.2.0", release.HTMLURL)
	assert.Equal(t, time.Date(2023, 8, 7, 15, 10, 28, 0, time.UTC), release.PublishedAt.UTC())
}

func TestLatestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	checker := &Checker{httpClient: srv.Client(), url: srv.URL}
	_, err := checker.Latest(context.Background())
	assert.Error(t, err)
}
