package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/gogobitcoin/gogobitcoin/internal/coingecko"
	"github.com/gogobitcoin/gogobitcoin/internal/schedule"
	"github.com/gogobitcoin/gogobitcoin/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

const defaultSnapshotWidth = 120

func main() {
	var configPath string
	var themeName string
	var snapshot bool
	var width int
	var printConfig bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/gogobitcoin/config.yml)")
	flag.StringVar(&themeName, "theme", "", "override theme: light, dark or system")
	flag.BoolVar(&snapshot, "snapshot", false, "print a single frame and exit (no terminal UI)")
	flag.IntVar(&width, "width", defaultSnapshotWidth, "frame width in columns for -snapshot")
	flag.BoolVar(&printConfig, "print-config", false, "print the effective configuration as YAML")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("GogoBitcoin - Bitcoin price dashboard\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if printConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		return
	}

	closeLog, err := setupLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if snapshot {
		err = runSnapshot(ctx, cfg, width)
	} else {
		err = runTUI(ctx, cfg)
	}
	if err != nil {
		slog.Error("exiting", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func resolveTheme(name string) (tui.Theme, error) {
	return tui.ParseTheme(name, lipgloss.HasDarkBackground)
}

func runTUI(ctx context.Context, cfg cliConfig) error {
	theme, err := resolveTheme(cfg.Theme)
	if err != nil {
		return err
	}

	client := coingecko.NewClient(cfg.APIBaseURL, nil)
	sched := schedule.New()

	shell, err := tui.NewShell(tui.ShellConfig{
		Context:       ctx,
		Prices:        client,
		History:       client,
		Scheduler:     sched,
		PriceInterval: cfg.PriceInterval,
		ClockInterval: cfg.ClockInterval,
		HistoryDays:   cfg.HistoryDays,
		ChartHeight:   cfg.ChartHeight,
		Theme:         theme,
	})
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}
	app := tui.NewApp(sched.Fires(), shell, tui.NewHelpPage(tui.DefaultKeyMap(), shell.Theme))

	sched.Start()
	defer sched.Stop()

	slog.Info("starting dashboard",
		"version", version,
		"theme", theme.String(),
		"price_interval", cfg.PriceInterval,
		"history_days", cfg.HistoryDays,
	)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal (try -snapshot)")
		}
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func runSnapshot(ctx context.Context, cfg cliConfig, width int) error {
	if width <= 0 {
		return fmt.Errorf("-width must be positive, got %d", width)
	}
	theme, err := resolveTheme(cfg.Theme)
	if err != nil {
		return err
	}

	client := coingecko.NewClient(cfg.APIBaseURL, nil)
	frame, err := tui.Snapshot(ctx, client, client, tui.SnapshotOptions{
		Width:       width,
		Theme:       theme,
		HistoryDays: cfg.HistoryDays,
		ChartHeight: cfg.ChartHeight,
	})
	if err != nil {
		return fmt.Errorf("rendering snapshot: %w", err)
	}
	fmt.Println(frame)
	return nil
}
