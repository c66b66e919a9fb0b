// Package prompt wraps the interactive questions the CLI asks. All
// prompts honor quiet mode: instead of blocking on a terminal they fail
// with ErrQuiet so scripted runs exit cleanly.
package prompt

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// ErrQuiet is returned when a prompt would be required but quiet mode
// suppresses all interactive input.
var ErrQuiet = errors.New("interactive input required but quiet mode is active")

// askOne is a test seam for survey.AskOne.
var askOne = survey.AskOne

// Asker asks interactive questions on the terminal.
type Asker struct {
	// Quiet makes every prompt fail instead of blocking on input.
	Quiet bool
}

// Text asks for a single line of input. In quiet mode the default is
// returned as-is; a missing required value is an error.
func (a *Asker) Text(message, defaultValue string, required bool) (string, error) {
	if a.Quiet {
		if required && defaultValue == "" {
			return "", ErrQuiet
		}
		return defaultValue, nil
	}

	var opts []survey.AskOpt
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}

	var answer string
	if err := askOne(&survey.Input{Message: message, Default: defaultValue}, &answer, opts...); err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Password asks for a masked password. With confirm set the question is
// asked twice and the two answers must match.
func (a *Asker) Password(message string, confirm bool) (string, error) {
	if a.Quiet {
		return "", ErrQuiet
	}

	var pass string
	if err := askOne(&survey.Password{Message: message}, &pass, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}

	if confirm {
		var again string
		if err := askOne(&survey.Password{Message: "Confirm password:"}, &again); err != nil {
			return "", err
		}
		if pass != again {
			return "", errors.New("the passwords don't match")
		}
	}
	return pass, nil
}

// Select asks the user to pick one of options and returns its index.
// The list is filterable by typing.
func (a *Asker) Select(message string, options []string) (int, error) {
	if a.Quiet {
		return 0, ErrQuiet
	}

	var index int
	err := askOne(&survey.Select{Message: message, Options: options, PageSize: 10}, &index)
	if err != nil {
		return 0, err
	}
	return index, nil
}

// Confirm asks a yes/no question. Quiet mode answers no.
func (a *Asker) Confirm(message string) (bool, error) {
	if a.Quiet {
		return false, nil
	}

	var answer bool
	if err := askOne(&survey.Confirm{Message: message}, &answer); err != nil {
		return false, err
	}
	return answer, nil
}
