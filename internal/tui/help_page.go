package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpPage lists key bindings and the backend in use.
type HelpPage struct {
	endpoint string
	policy   string
	keys     KeyMap
	help     help.Model
}

// NewHelpPage creates the help page. endpoint and policy are informational.
func NewHelpPage(endpoint, policy string) *HelpPage {
	h := help.New()
	h.ShowAll = true
	return &HelpPage{
		endpoint: endpoint,
		policy:   policy,
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

func (p *HelpPage) ID() string { return PageHelp }

func (p *HelpPage) Init() tea.Cmd { return nil }

func (p *HelpPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.ForceQuit):
			return tea.Quit, nil
		case key.Matches(msg, p.keys.Back):
			return nil, &PageNav{Back: true}
		}
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
	}
	return nil, nil
}

func (p *HelpPage) View(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Help"),
		"",
		"Type a subdomain and press enter to ask the backend whether it is free.",
		"A new check can be started while one is still running.",
		"",
		subtitleStyle.Render("Backend:         "+p.endpoint),
		subtitleStyle.Render("Stale responses: "+p.policy),
		"",
		p.help.View(p.keys),
	)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
