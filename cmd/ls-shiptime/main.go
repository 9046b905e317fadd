// Command ls-shiptime is a terminal UI for ship's time and International
// Date Line crossings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/litescript/ls-shiptime/internal/config"
	"github.com/litescript/ls-shiptime/internal/geo"
	"github.com/litescript/ls-shiptime/internal/logging"
	"github.com/litescript/ls-shiptime/internal/route"
	"github.com/litescript/ls-shiptime/internal/session"
	"github.com/litescript/ls-shiptime/internal/state"
	"github.com/litescript/ls-shiptime/internal/tz"
	"github.com/litescript/ls-shiptime/internal/ui"
	"github.com/litescript/ls-shiptime/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	watchInterval time.Duration
	playMode      bool
	snapshotPath  string
	beepMode      bool
	eventsMode    bool
)

const maxLoggedCrossings = 10

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Config file (default: shiptime.yaml in . or ~/.config/ls-shiptime)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Log file for the TUI")
	tzMode := flag.String("tz", "", "Timezone model (simple, political)")
	speed := flag.String("speed", "", "Route speed (slow, medium, fast)")
	routeSpec := flag.String("route", "", `Route waypoints, e.g. "170,190" or "10:170,12:190"`)
	lat := flag.Float64("lat", 0, "Ship latitude")
	lng := flag.Float64("lng", 0, "Ship longitude")
	noSession := flag.Bool("no-session", false, "Do not restore or save the session")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print ship's time instead of TUI")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat summary at interval (e.g., 30s)")
	flag.BoolVar(&playMode, "play", false, "Animate the route headless and print crossings")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&beepMode, "beep", false, "Beep on Date Line crossings (TTY only)")
	flag.BoolVar(&eventsMode, "events", false, "Show crossing log")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-shiptime v%s\n", version.Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override config
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["log-level"] {
		cfg.Log.Level = *logLevel
	}
	if set["log-file"] {
		cfg.Log.File = *logFile
	}
	if set["tz"] {
		cfg.Timezone.Mode = *tzMode
	}
	if set["speed"] {
		cfg.Route.Speed = *speed
	}
	if set["lat"] {
		cfg.Ship.Latitude = *lat
	}
	if set["lng"] {
		cfg.Ship.Longitude = *lng
	}
	if *noSession {
		cfg.Session.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	headless := summaryMode || watchInterval > 0 || playMode || snapshotPath != "" || eventsMode

	// Set up logging. The TUI owns the terminal, so it logs to a file.
	level := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(level)
	if !headless && cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err == nil {
			logger = logging.NewFile(level, cfg.Log.File, logging.DefaultFileOptions())
		}
	}
	defer logger.Close()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Route: config speed, then session, then flags
	routeModel := route.NewModel()
	sp, _ := route.ParseSpeed(cfg.Route.Speed)
	routeModel.SetSpeed(sp)

	ship := geo.Position{Lat: cfg.Ship.Latitude, Lng: cfg.Ship.Longitude}
	if cfg.Session.Enabled && *routeSpec == "" {
		var restoredMode string
		ship, restoredMode = restoreSession(cfg.Session.Path, routeModel, ship, cfg.Timezone.Mode, logger)
		if !set["tz"] {
			cfg.Timezone.Mode = restoredMode
		}
		if set["speed"] {
			routeModel.SetSpeed(sp)
		}
		if set["lat"] {
			ship.Lat = *lat
		}
		if set["lng"] {
			ship.Lng = *lng
		}
	}
	if *routeSpec != "" {
		wps, err := route.ParseWaypoints(*routeSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --route: %v\n", err)
			os.Exit(1)
		}
		routeModel.SetWaypoints(wps)
		if !set["lat"] && !set["lng"] && len(wps) > 0 {
			ship = wps[0].Position()
		}
	}

	// Initialize components
	mode := tz.ParseMode(cfg.Timezone.Mode)
	stateCfg := state.DefaultConfig()
	stateCfg.AlertDuration = cfg.Alert.Duration
	stateCfg.Resolver = tz.NewResolver(mode)
	stateCfg.Position = ship
	stateMgr := state.NewManager(stateCfg)

	player := route.NewPlayer(routeModel, route.WithFrameInterval(cfg.Route.FrameInterval))

	logger.Info("ls-shiptime v%s starting: tz=%s speed=%s waypoints=%d", version.Version, mode, routeModel.Speed(), routeModel.Len())

	// Headless mode: no TUI
	if headless {
		err := runHeadless(ctx, stateMgr, player, cfg, logger)
		saveSession(cfg, routeModel, stateMgr, mode, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create TUI model
	model := ui.New(stateMgr, player,
		ui.WithLogger(logger),
		ui.WithTickInterval(cfg.Clock.TickInterval),
	)

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Run TUI (blocks until quit)
	final, err := p.Run()
	player.Stop()
	if m, ok := final.(ui.Model); ok {
		mode = tz.ParseMode(m.Snapshot().Resolver)
	}
	saveSession(cfg, routeModel, stateMgr, mode, logger)
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func restoreSession(path string, m *route.Model, ship geo.Position, tzMode string, logger *logging.Logger) (geo.Position, string) {
	s, ok, err := session.Load(path)
	if err != nil {
		logger.Warn("Session restore failed: %v", err)
		return ship, tzMode
	}
	if !ok {
		return ship, tzMode
	}
	pos, err := s.Apply(m)
	if err != nil {
		logger.Warn("Session restore failed: %v", err)
		return ship, tzMode
	}
	logger.Debug("Restored session from %s: %d waypoints", path, len(s.Waypoints))
	if logger.Enabled(logging.LevelDebug) {
		logger.Debug("Session contents:\n%s", godump.DumpStr(s))
	}
	return pos, s.TimezoneMode(tzMode)
}

func saveSession(cfg *config.Config, m *route.Model, stateMgr *state.Manager, mode tz.Mode, logger *logging.Logger) {
	if !cfg.Session.Enabled {
		return
	}
	s := session.Capture(m, stateMgr.Position(), mode.String())
	if err := session.Save(cfg.Session.Path, s); err != nil {
		logger.Warn("Session save failed: %v", err)
		return
	}
	logger.Debug("Saved session to %s", cfg.Session.Path)
}

// runClock is the headless UTC source.
func runClock(ctx context.Context, stateMgr *state.Manager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			stateMgr.SetUTC(t)
		}
	}
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, player *route.Player, cfg *config.Config, logger *logging.Logger) error {
	stateMgr.SetUTC(time.Now())

	// The clock runs until output is finished
	g, gctx := errgroup.WithContext(ctx)
	clockCtx, stopClock := context.WithCancel(gctx)
	g.Go(func() error {
		runClock(clockCtx, stateMgr, cfg.Clock.TickInterval)
		return nil
	})
	g.Go(func() error {
		defer stopClock()
		return writeHeadless(gctx, stateMgr, player, logger)
	})
	return g.Wait()
}

func writeHeadless(ctx context.Context, stateMgr *state.Manager, player *route.Player, logger *logging.Logger) error {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if playMode {
		if err := playRoute(ctx, stateMgr, player, isTTY, logger); err != nil {
			return err
		}
	}

	outputOnce := func() error {
		snap := stateMgr.Snapshot()

		// Export JSON if requested
		if snapshotPath != "" {
			export := snap.Export()
			if snapshotPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode || playMode || watchInterval > 0 {
			state.WriteSummary(os.Stdout, snap)
		}

		// Crossing log
		if eventsMode {
			fmt.Println()
			state.WriteCrossings(os.Stdout, snap.Crossings, maxLoggedCrossings)
		}
		return nil
	}

	// Single run
	if watchInterval == 0 {
		return outputOnce()
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Println() // Blank line between outputs
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// playRoute animates the route to completion, printing each crossing.
func playRoute(ctx context.Context, stateMgr *state.Manager, player *route.Player, isTTY bool, logger *logging.Logger) error {
	first, ok := player.Play()
	if !ok {
		return fmt.Errorf("--play needs a route with at least two waypoints")
	}

	frameLog := logger.Throttle(time.Second)
	apply := func(f route.Frame) {
		frameLog.Debug("frame segment=%d progress=%.2f lng=%.3f", f.Segment, f.Progress, f.Position.Lng)
		if _, crossed := stateMgr.SetShipPosition(f.Position.Position()); crossed {
			events := stateMgr.RecentCrossings(1)
			state.WriteCrossing(os.Stdout, events[0])
			if beepMode && isTTY {
				fmt.Print("\a")
			}
		}
	}

	logger.Info("Playing %d waypoints at %s speed", player.Route().Len(), player.Route().Speed())
	apply(first)
	if err := player.Run(ctx, apply); err != nil {
		logger.Debug("Playback interrupted: %v", err)
		return nil
	}
	logger.Info("Playback complete")
	return nil
}
