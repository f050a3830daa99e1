package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogobitcoin/gogobitcoin/internal/schedule"
)

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	activePage string
	keys       KeyMap
	fires      <-chan schedule.Fire
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the
// default. fires may be nil when no scheduler is running.
func NewApp(fires <-chan schedule.Fire, pages ...Page) *App {
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
		keys:       DefaultKeyMap(),
		fires:      fires,
	}
}

// ActivePage returns the ID of the page currently shown.
func (a *App) ActivePage() string {
	return a.activePage
}

func (a *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if p, ok := a.pages[a.activePage]; ok {
		cmds = append(cmds, p.Init())
	}
	cmds = append(cmds, listenFires(a.fires))
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var rearm tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) || key.Matches(msg, a.keys.Quit) {
			a.teardownActive()
			return a, tea.Quit
		}
	case schedule.Fire:
		// The listener delivers one fire per arm; re-arm before routing.
		rearm = listenFires(a.fires)
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, rearm
	}

	cmd, nav := p.Update(msg)

	if nav != nil {
		if next, exists := a.pages[nav.PageID]; exists && nav.PageID != a.activePage {
			p.Teardown()
			a.activePage = nav.PageID
			initCmd := next.Init()
			sizeCmd, _ := next.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
			return a, tea.Batch(cmd, initCmd, sizeCmd, rearm)
		}
	}

	return a, tea.Batch(cmd, rearm)
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

func (a *App) teardownActive() {
	if p, ok := a.pages[a.activePage]; ok {
		p.Teardown()
	}
}

// listenFires waits for the next scheduler fire and delivers it as a message.
func listenFires(fires <-chan schedule.Fire) tea.Cmd {
	if fires == nil {
		return nil
	}
	return func() tea.Msg {
		f, ok := <-fires
		if !ok {
			return nil
		}
		return f
	}
}
