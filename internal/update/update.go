// Package update checks GitHub for a newer released version.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
)

const releaseURL = "https://api.github.com/repos/vaultops/syspass-cli/releases/latest"

// Release is the subset of the GitHub release object the checker needs.
type Release struct {
	HTMLURL     string    `json:"html_url"`
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
}

// NewerThan reports whether the release is a higher version than
// current. Both sides tolerate a leading "v".
func (r *Release) NewerThan(current string) (bool, error) {
	releaseVersion, err := version.NewVersion(strings.TrimPrefix(r.TagName, "v"))
	if err != nil {
		return false, fmt.Errorf("parse release tag %q: %w", r.TagName, err)
	}
	currentVersion, err := version.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("parse current version %q: %w", current, err)
	}
	return releaseVersion.GreaterThan(currentVersion), nil
}

// Checker fetches the latest release from GitHub.
type Checker struct {
	httpClient *http.Client
	url        string
}

func NewChecker() *Checker {
	return &Checker{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        releaseURL,
	}
}

// Latest fetches the most recent release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "syspass-cli")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release information: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch release information: unexpected status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release information: %w", err)
	}
	return &release, nil
}
