package tui

import "github.com/fosscu/subdomain-checker/internal/checker"

// checkResultMsg carries the outcome of one availability request back to the
// event loop.
type checkResultMsg struct {
	ticket    checker.Ticket
	available bool
	err       error
}
