package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vaultops/syspass-cli/internal/update"
)

// latestRelease is a test seam for the GitHub release lookup.
var latestRelease = func(ctx context.Context) (*update.Release, error) {
	return update.NewChecker().Latest(ctx)
}

func newCheckUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check-update",
		Short: "Check whether a newer release is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.checkUpdate(cmd.Context())
		},
	}
}

func (a *App) checkUpdate(ctx context.Context) error {
	release, err := latestRelease(ctx)
	if err != nil {
		return err
	}

	newer, err := release.NewerThan(a.version)
	if err != nil {
		return err
	}
	if !newer {
		a.failf("No new versions available")
		return nil
	}

	a.successf("New version %s was released on %s\nDownload from: %s",
		release.TagName, release.PublishedAt.Format("2006-01-02"), release.HTMLURL)
	return nil
}
