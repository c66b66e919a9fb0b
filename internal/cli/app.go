// Package cli implements the command tree of the sysPass CLI client.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vaultops/syspass-cli/internal/api"
	"github.com/vaultops/syspass-cli/internal/config"
	"github.com/vaultops/syspass-cli/internal/logging"
)

// asker is the interactive surface the commands share. Satisfied by
// prompt.Asker; tests script it.
type asker interface {
	Text(message, defaultValue string, required bool) (string, error)
	Password(message string, confirm bool) (string, error)
	Select(message string, options []string) (int, error)
	Confirm(message string) (bool, error)
	Date(message, defaultValue string) (string, error)
}

// usageRecorder tracks which account a search ended on.
type usageRecorder interface {
	Record(id int) error
}

// App carries the collaborators every command needs. The fields are
// populated once by the root command before any subcommand runs.
type App struct {
	cfg     *config.Config
	log     logging.Logger
	client  api.Client
	usage   usageRecorder
	ask     asker
	out     io.Writer
	quiet   bool
	version string
}

var (
	glyphOK   = color.New(color.FgHiGreen).Sprint("✔")
	glyphFail = color.New(color.FgHiRed).Sprint("✖")
	green     = color.New(color.FgGreen).SprintFunc()
)

// successf prints a checkmarked status line. Quiet mode swallows it.
func (a *App) successf(format string, args ...interface{}) {
	if a.quiet {
		return
	}
	fmt.Fprintln(a.out, glyphOK+" "+fmt.Sprintf(format, args...))
}

// failf prints a crossmarked status line. Quiet mode swallows it.
func (a *App) failf(format string, args ...interface{}) {
	if a.quiet {
		return
	}
	fmt.Fprintln(a.out, glyphFail+" "+fmt.Sprintf(format, args...))
}
