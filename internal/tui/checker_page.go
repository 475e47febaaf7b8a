package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fosscu/subdomain-checker/internal/checker"
	"github.com/fosscu/subdomain-checker/internal/model"
	"github.com/fosscu/subdomain-checker/internal/render"
)

// CheckerPage hosts the subdomain field, the submit control and the result
// banner. All controller mutations happen on the Bubble Tea event loop; only
// the network call runs inside a tea.Cmd.
type CheckerPage struct {
	ctrl         *checker.Controller
	parentDomain string

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    KeyMap
}

// NewCheckerPage creates the checker page around ctrl.
func NewCheckerPage(ctrl *checker.Controller, parentDomain string) *CheckerPage {
	if parentDomain == "" {
		parentDomain = model.DefaultParentDomain
	}

	ti := textinput.New()
	ti.Placeholder = "Enter subdomain"
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Width = 32
	ti.Focus()

	return &CheckerPage{
		ctrl:         ctrl,
		parentDomain: parentDomain,
		input:        ti,
		spinner:      newBusySpinner(),
		help:         help.New(),
		keys:         DefaultKeyMap(),
	}
}

func (p *CheckerPage) ID() string { return PageChecker }

func (p *CheckerPage) Init() tea.Cmd {
	return textinput.Blink
}

// Snapshot exposes the controller state for status lines and tests.
func (p *CheckerPage) Snapshot() model.CheckState {
	return p.ctrl.Snapshot()
}

func (p *CheckerPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
		return nil, nil
	}
	return p.Background(msg), nil
}

// Background handles async results and spinner ticks. It implements
// BackgroundPage so a check finishing behind the help page still lands.
func (p *CheckerPage) Background(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case checkResultMsg:
		p.ctrl.Resolve(msg.ticket, msg.available, msg.err)
		return nil
	case spinner.TickMsg:
		if !p.ctrl.Snapshot().IsPending {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (p *CheckerPage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, p.keys.ForceQuit):
		p.ctrl.Close()
		return tea.Quit, nil
	case key.Matches(msg, p.keys.Help):
		return nil, &PageNav{PageID: PageHelp}
	case key.Matches(msg, p.keys.Submit):
		return p.submit(), nil
	case key.Matches(msg, p.keys.Clear):
		p.input.SetValue("")
		p.ctrl.OnTextChanged("")
		return nil, nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if after := p.input.Value(); after != before {
		p.ctrl.OnTextChanged(after)
	}
	return cmd, nil
}

// submit dispatches one check. Overlapping submissions are not deduplicated.
func (p *CheckerPage) submit() tea.Cmd {
	wasPending := p.ctrl.Snapshot().IsPending

	ticket, err := p.ctrl.Begin()
	if err != nil {
		return nil
	}

	ctrl := p.ctrl
	check := func() tea.Msg {
		available, err := ctrl.Run(context.Background(), ticket)
		return checkResultMsg{ticket: ticket, available: available, err: err}
	}
	if wasPending {
		return check
	}
	return tea.Batch(check, p.spinner.Tick)
}

func (p *CheckerPage) View(width, height int) string {
	v := render.Render(p.ctrl.Snapshot(), p.parentDomain)

	header := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("FOSSCU Subdomain Checker"),
		subtitleStyle.Render("Check availability of subdomains under "+p.parentDomain),
	)

	field := fieldStyle.Render(p.input.View() + suffixStyle.Render("."+v.ParentDomain))
	row := lipgloss.JoinHorizontal(lipgloss.Center, field, p.renderButton(v))

	sections := []string{header, "", row}
	if banner := renderBanner(v); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections,
		footerStyle.Render(p.help.View(p.keys)),
		footerStyle.Render("Powered by FOSSCU"),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (p *CheckerPage) renderButton(v render.View) string {
	if v.SubmitBusy {
		return buttonDisabledStyle.Render(p.spinner.View() + " Check")
	}
	return buttonStyle.Render(idleIcon + " Check")
}

// renderBanner draws the single visible banner, or "" when none applies.
func renderBanner(v render.View) string {
	switch v.Banner {
	case render.BannerError:
		return errorBannerStyle.Render(v.BannerText)
	case render.BannerAvailable:
		return availableBannerStyle.Render("✓ " + v.BannerText)
	case render.BannerTaken:
		return takenBannerStyle.Render("✗ " + v.BannerText)
	}
	return ""
}

