package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (checker, help).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// BackgroundPage is implemented by pages that must keep consuming non-key
// messages (async results, spinner ticks) while another page is active.
type BackgroundPage interface {
	Background(msg tea.Msg) tea.Cmd
}

// PageNav is returned from Update to request a page switch.
// Back returns to the previously active page and ignores PageID.
type PageNav struct {
	PageID string
	Back   bool
}

const (
	PageChecker = "checker"
	PageHelp    = "help"
)
