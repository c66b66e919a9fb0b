package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultops/syspass-cli/internal/update"
)

func stubRelease(t *testing.T, release *update.Release, err error) {
	t.Helper()
	orig := latestRelease
	latestRelease = func(context.Context) (*update.Release, error) {
		return release, err
	}
	t.Cleanup(func() { latestRelease = orig })
}

func TestCheckUpdateReportsNewRelease(t *testing.T) {
	h := newTestApp(t)
	stubRelease(t, &update.Release{
		HTMLURL:     "https://github.com/vaultops/syspass-cli/releases/tag/v0.2.0",
		TagName:     "v0.2.0",
		PublishedAt: time.Date(2023, 8, 7, 15, 10, 28, 0, time.UTC),
	}, nil)

	require.NoError(t, h.app.checkUpdate(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "New version v0.2.0 was released on 2023-08-07")
	assert.Contains(t, out, "https://github.com/vaultops/syspass-cli/releases/tag/v0.2.0")
}

func TestCheckUpdateNoNewVersion(t *testing.T) {
	h := newTestApp(t)
	stubRelease(t, &update.Release{TagName: "v0.1.0"}, nil)

	require.NoError(t, h.app.checkUpdate(context.Background()))
	assert.Contains(t, h.out.String(), "No new versions available")
}

func TestCheckUpdatePropagatesFetchError(t *testing.T) {
	h := newTestApp(t)
	stubRelease(t, nil, assert.AnError)

	err := h.app.checkUpdate(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
