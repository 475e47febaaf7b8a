package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// newBusySpinner returns the spinner drawn inside the submit control while a
// check is pending.
func newBusySpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Spinner{
			Frames: spinnerFrames,
			FPS:    120 * time.Millisecond,
		}),
	)
}

// idleIcon replaces the spinner when no check is in flight.
const idleIcon = "⌕"
