package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (dashboard, help).
// Init mounts the page and Teardown unmounts it; App calls them around
// every navigation so a page never outlives its timers.
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
	Teardown()
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
}
