package prompt

import (
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
)

const dateLayout = "2006-01-02"

// Date asks for a YYYY-mm-dd date, validating the format. An empty
// answer is allowed and means "no date".
func (a *Asker) Date(message, defaultValue string) (string, error) {
	validate := survey.WithValidator(func(answer interface{}) error {
		value, _ := answer.(string)
		if value == "" {
			return nil
		}
		if _, err := time.Parse(dateLayout, value); err != nil {
			return fmt.Errorf("expected a YYYY-mm-dd date")
		}
		return nil
	})

	if a.Quiet {
		return defaultValue, nil
	}

	var answer string
	err := askOne(&survey.Input{Message: message, Default: defaultValue}, &answer, validate)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// ExpiryEpoch converts a YYYY-mm-dd date to the Unix timestamp of the
// end of that day. An empty date means no expiration and yields 0.
func ExpiryEpoch(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return 0, fmt.Errorf("parse expiration date: %w", err)
	}
	endOfDay := day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return endOfDay.Unix(), nil
}

// DefaultExpiry is the suggested expiration for a new password,
// 18 months from now.
func DefaultExpiry(now time.Time) string {
	return now.AddDate(0, 18, 0).Format(dateLayout)
}
