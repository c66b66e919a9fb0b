// Package clipboard copies passwords to the system clipboard and clears
// them again after a timeout.
package clipboard

import (
	"time"

	"github.com/atotto/clipboard"
)

// writeAll is a test seam for the system clipboard.
var writeAll = clipboard.WriteAll

// Copy places text on the system clipboard.
func Copy(text string) error {
	err := writeAll(text)
	if err != nil {
		return err
	}
	// KDE / Wayland clipboard managers need a moment before the owning
	// process may exit.
	time.Sleep(10 * time.Millisecond)
	return nil
}

// Clear empties the clipboard.
func Clear() error {
	return writeAll("")
}

// ClearAfter waits the given number of seconds, then clears the
// clipboard. A timeout of 0 or less disables clearing.
func ClearAfter(seconds int) error {
	if seconds <= 0 {
		return nil
	}
	time.Sleep(time.Duration(seconds) * time.Second)
	return Clear()
}
