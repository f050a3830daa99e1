package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpPage lists every key binding. It renders in whatever theme the
// dashboard currently uses.
type HelpPage struct {
	keys  KeyMap
	help  help.Model
	theme func() Theme
}

// NewHelpPage creates the help page. theme reports the active theme.
func NewHelpPage(keys KeyMap, theme func() Theme) *HelpPage {
	h := help.New()
	h.ShowAll = true
	return &HelpPage{keys: keys, help: h, theme: theme}
}

func (p *HelpPage) ID() string { return HelpPageID }

func (p *HelpPage) Init() tea.Cmd { return nil }

func (p *HelpPage) Teardown() {}

func (p *HelpPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, p.keys.Back) {
			return nil, &PageNav{PageID: DashboardPageID}
		}
	}
	return nil, nil
}

func (p *HelpPage) View(width, height int) string {
	t := ThemeLight
	if p.theme != nil {
		t = p.theme()
	}
	st := NewStyles(t)

	body := lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render("₿ GogoBitcoin"),
		st.Muted.Render("Live Bitcoin price and a 30-day candlestick trend."),
		"",
		st.CardTitle.Render("Keys"),
		p.help.View(p.keys),
		"",
		st.Muted.Render("The price refreshes on a timer. Historical data loads once when the dashboard opens."),
	)
	box := st.Card.Render(body)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
