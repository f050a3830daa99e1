package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/gogobitcoin/gogobitcoin/internal/model"
	"github.com/gogobitcoin/gogobitcoin/internal/schedule"
)

const (
	DashboardPageID = "dashboard"
	HelpPageID      = "help"

	twoColumnMinWidth = 100
	columnGap         = 2

	priceTaskName = "price"
	clockTaskName = "clock"
)

// ShellConfig wires the dashboard to its data sources and timers.
type ShellConfig struct {
	Context       context.Context
	Prices        model.PriceFetcher
	History       model.HistoryFetcher
	Scheduler     *schedule.Scheduler // nil disables polling and the clock
	PriceInterval time.Duration
	ClockInterval time.Duration
	HistoryDays   uint
	ChartHeight   int
	Theme         Theme
	Keys          KeyMap
	Now           func() time.Time
}

// Shell is the dashboard page: header, price card, chart card and footer.
type Shell struct {
	price *PriceWidget
	chart *ChartWidget
	clock *schedule.Task

	theme         Theme
	styles        Styles
	keys          KeyMap
	help          help.Model
	priceInterval time.Duration
	historyDays   uint
	chartHeight   int

	now         func() time.Time
	lastChecked time.Time
	mounted     bool
	spinning    bool

	width  int
	height int
}

// NewShell creates the dashboard page. Task registration fails only on a
// bad interval or a reused scheduler.
func NewShell(cfg ShellConfig) (*Shell, error) {
	if cfg.PriceInterval <= 0 {
		cfg.PriceInterval = model.DefaultPriceInterval
	}
	if cfg.ClockInterval <= 0 {
		cfg.ClockInterval = model.DefaultClockInterval
	}
	if cfg.HistoryDays == 0 {
		cfg.HistoryDays = model.DefaultHistoryDays
	}
	if cfg.ChartHeight <= 0 {
		cfg.ChartHeight = model.DefaultChartHeight
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Keys.Quit.Keys() == nil {
		cfg.Keys = DefaultKeyMap()
	}

	var priceTask, clockTask *schedule.Task
	if cfg.Scheduler != nil {
		var err error
		priceTask, err = cfg.Scheduler.NewTask(priceTaskName, cfg.PriceInterval)
		if err != nil {
			return nil, fmt.Errorf("price task: %w", err)
		}
		clockTask, err = cfg.Scheduler.NewTask(clockTaskName, cfg.ClockInterval)
		if err != nil {
			return nil, fmt.Errorf("clock task: %w", err)
		}
	}

	return &Shell{
		price:         NewPriceWidget(cfg.Context, cfg.Prices, priceTask),
		chart:         NewChartWidget(cfg.Context, cfg.History, cfg.HistoryDays, cfg.ChartHeight),
		clock:         clockTask,
		theme:         cfg.Theme,
		styles:        NewStyles(cfg.Theme),
		keys:          cfg.Keys,
		help:          help.New(),
		priceInterval: cfg.PriceInterval,
		historyDays:   cfg.HistoryDays,
		chartHeight:   cfg.ChartHeight,
		now:           cfg.Now,
	}, nil
}

func (s *Shell) ID() string { return DashboardPageID }

// Theme returns the active theme.
func (s *Shell) Theme() Theme { return s.theme }

// SetTheme switches the theme and rebuilds the styles.
func (s *Shell) SetTheme(t Theme) {
	s.theme = t
	s.styles = NewStyles(t)
	s.chart.Sync(s.theme, s.chartWidth())
}

// Price returns the price widget.
func (s *Shell) Price() *PriceWidget { return s.price }

// Chart returns the chart widget.
func (s *Shell) Chart() *ChartWidget { return s.chart }

// Init mounts both widgets and starts the clock.
func (s *Shell) Init() tea.Cmd {
	cmds := s.mount()
	cmds = append(cmds, s.armSpinner())
	return tea.Batch(cmds...)
}

// mount starts every timer and returns the widgets' initial fetches.
func (s *Shell) mount() []tea.Cmd {
	s.mounted = true
	s.lastChecked = s.now()
	if s.clock != nil {
		if err := s.clock.Start(); err != nil {
			// Without the clock the "last checked" line just stops advancing.
			s.clock = nil
		}
	}
	return []tea.Cmd{s.price.Mount(), s.chart.Mount()}
}

// Teardown unmounts both widgets and stops the clock.
func (s *Shell) Teardown() {
	s.mounted = false
	s.price.Unmount()
	s.chart.Unmount()
	if s.clock != nil {
		s.clock.Stop()
	}
}

func (s *Shell) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width
		s.chart.Resize(s.chartWidth())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.ToggleTheme):
			s.SetTheme(s.theme.Toggle())
		case key.Matches(msg, s.keys.Help):
			return nil, &PageNav{PageID: HelpPageID}
		}

	case schedule.Fire:
		if s.clock != nil && s.clock.Owns(msg) {
			if s.mounted {
				s.lastChecked = s.now()
			}
		} else {
			cmds = append(cmds, s.price.Update(msg))
		}

	case SpinnerTickMsg:
		s.spinning = false

	default:
		cmds = append(cmds, s.price.Update(msg), s.chart.Update(msg))
	}

	s.chart.Sync(s.theme, s.chartWidth())
	cmds = append(cmds, s.armSpinner())
	return tea.Batch(cmds...), nil
}

// armSpinner starts a spinner tick chain when a placeholder is visible and
// no tick is already pending.
func (s *Shell) armSpinner() tea.Cmd {
	if !s.mounted || s.spinning || !s.anyLoading() {
		return nil
	}
	s.spinning = true
	return spinnerTick()
}

// anyLoading reports whether either widget still shows a placeholder.
func (s *Shell) anyLoading() bool {
	return s.price.ShowsPlaceholder() || s.chart.State().IsLoading()
}

// cardWidth returns the content width of one card and whether the cards
// sit side by side.
func (s *Shell) cardWidth() (int, bool) {
	frame := s.styles.Card.GetHorizontalFrameSize()
	if s.width >= twoColumnMinWidth {
		return (s.width-columnGap)/2 - frame, true
	}
	return s.width - frame, false
}

// chartWidth is the width handed to the chart instance.
func (s *Shell) chartWidth() int {
	w, _ := s.cardWidth()
	return max(w, 0)
}

func (s *Shell) View(width, height int) string {
	if width <= 0 {
		width = s.width
	}
	st := s.styles
	cardW, twoCol := s.cardWidth()
	if cardW <= 0 {
		return renderLoadingPlaceholder(width, height, st)
	}

	header := s.renderHeader(width)

	priceBody := lipgloss.JoinVertical(lipgloss.Left,
		s.price.View(cardW, st),
		"",
		st.Muted.Render("Last checked: "+humanize.RelTime(s.lastChecked, s.now(), "ago", "from now")),
	)
	priceCard := renderCard(st, cardW,
		"Bitcoin Price (USD)",
		fmt.Sprintf("Live price updated every %s", humanizeInterval(s.priceInterval)),
		priceBody,
	)
	chartCard := renderCard(st, cardW,
		fmt.Sprintf("%d-Day Price Trend", s.historyDays),
		fmt.Sprintf("Historical performance over the last %d days", s.historyDays),
		s.chart.View(cardW, st),
	)

	var cards string
	if twoCol {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, priceCard, strings.Repeat(" ", columnGap), chartCard)
	} else {
		cards = lipgloss.JoinVertical(lipgloss.Left, priceCard, chartCard)
	}

	footer := st.Footer.Render(fmt.Sprintf("Data provided by public Bitcoin APIs • %d", s.now().Year()))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		cards,
		"",
		footer,
		s.help.View(s.keys),
	)
}

func (s *Shell) renderHeader(width int) string {
	st := s.styles
	title := st.Title.Render("₿ GogoBitcoin")
	icon := "☀"
	if s.theme == ThemeDark {
		icon = "☾"
	}
	indicator := st.Indicator.Render(icon + " " + s.theme.String())

	gap := width - lipgloss.Width(title) - lipgloss.Width(indicator)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + indicator
}

// renderCard draws a bordered card with a title, a muted subtitle and a body.
func renderCard(st Styles, width int, title, subtitle, body string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		st.CardTitle.Render(title),
		st.Muted.Render(subtitle),
		"",
		body,
	)
	return st.Card.Width(width + st.Card.GetHorizontalPadding()).Render(content)
}

// humanizeInterval renders a refresh interval the way the card subtitle
// reads: "10 seconds", "1 minute".
func humanizeInterval(d time.Duration) string {
	switch {
	case d%time.Minute == 0:
		n := int(d / time.Minute)
		if n == 1 {
			return "minute"
		}
		return fmt.Sprintf("%d minutes", n)
	case d%time.Second == 0:
		n := int(d / time.Second)
		if n == 1 {
			return "second"
		}
		return fmt.Sprintf("%d seconds", n)
	default:
		return d.String()
	}
}
