package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	activePage string
	history    []string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	var firstID string
	for i, p := range pages {
		pageMap[p.ID()] = p
		if i == 0 {
			firstID = p.ID()
		}
	}
	return &App{
		pages:      pageMap,
		activePage: firstID,
	}
}

// ActivePage returns the ID of the page currently receiving input.
func (a *App) ActivePage() string {
	return a.activePage
}

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	// Async results must reach the page that issued them even when another
	// page is in front.
	if _, ok := msg.(tea.KeyMsg); !ok {
		var cmds []tea.Cmd
		for id, p := range a.pages {
			if id == a.activePage {
				continue
			}
			if bg, ok := p.(BackgroundPage); ok {
				cmds = append(cmds, bg.Background(msg))
			}
		}
		cmd := a.routeActive(msg)
		return a, tea.Batch(append(cmds, cmd)...)
	}

	return a, a.routeActive(msg)
}

func (a *App) routeActive(msg tea.Msg) tea.Cmd {
	p, ok := a.pages[a.activePage]
	if !ok {
		return nil
	}

	cmd, nav := p.Update(msg)
	if nav == nil {
		return cmd
	}

	target := nav.PageID
	if nav.Back {
		if len(a.history) == 0 {
			return cmd
		}
		target = a.history[len(a.history)-1]
		a.history = a.history[:len(a.history)-1]
	} else {
		if _, exists := a.pages[target]; !exists {
			return cmd
		}
		a.history = append(a.history, a.activePage)
	}

	a.activePage = target
	initCmd := a.pages[a.activePage].Init()
	return tea.Batch(cmd, initCmd)
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}
