package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/weplanet/ecoquest/internal/api"
	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/database"
	"github.com/weplanet/ecoquest/internal/reward"
	"github.com/weplanet/ecoquest/internal/tui"
	"github.com/weplanet/ecoquest/internal/util"
)

type paths struct {
	dataDir string
	dbFile  string
	logFile string
	reports string
}

func resolvePaths(cfg *config.Config) paths {
	dataDir := cfg.Storage.DataDir
	if dataDir == "" {
		dataDir = util.DataDir(config.AppName)
	}
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(dataDir, config.LogFile)
	}
	return paths{
		dataDir: dataDir,
		dbFile:  filepath.Join(dataDir, config.DBFileName),
		logFile: logFile,
		reports: util.ReportsDir(config.AppName),
	}
}

func main() {
	resetLock := flag.Bool("reset-lock", false, "clear the locally stored daily lock and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	p := resolvePaths(cfg)
	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}

	log, err := util.NewLogger(cfg.Log.Level, p.logFile)
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx := context.Background()
	db, err := database.Open(ctx, p.dbFile)
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	tui.SetTheme(cfg.UI.Theme)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout(), api.WithLogger(log))
	deps := tui.Deps{
		Backend:    client,
		Store:      db,
		UserID:     cfg.User.ID,
		Log:        log,
		Now:        time.Now,
		ReportsDir: p.reports,
	}

	if *resetLock {
		guard := reward.NewLockGuard(client, db, cfg.User.ID, reward.WithGuardLogger(log))
		if err := guard.ResetLock(ctx); err != nil {
			util.LogError("reset lock", err)
			fmt.Printf("Could not clear the local lock: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Local lock cleared.")
		return
	}

	// Without a terminal there is nothing to draw; print today's state instead.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		printStatus(ctx, os.Stdout, deps)
		return
	}

	model := tui.NewMainModel(deps)
	defer model.Close()
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := prog.Run(); err != nil {
		util.LogError("program exited", err)
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

func printStatus(ctx context.Context, w io.Writer, deps tui.Deps) {
	guard := reward.NewLockGuard(deps.Backend, deps.Store, deps.UserID, reward.WithClock(deps.Now), reward.WithGuardLogger(deps.Log))
	check := guard.Check(ctx)
	if err := guard.Observe(ctx, check); err != nil {
		util.LogError("mirror lock status", err)
	}
	state := "available"
	if check.Status.Locked {
		state = "done"
	}
	suffix := ""
	if !check.Authoritative {
		suffix = " [offline]"
	}
	fmt.Fprintf(w, "Today's mission (%s): %s%s\n", guard.Today(), state, suffix)

	tracker := reward.NewTracker(deps.Backend, deps.Store, deps.UserID, deps.Log)
	tracker.Apply(ctx, tracker.Fetch(ctx, tracker.Begin()))
	prog := tracker.Progress()
	displays := tracker.Displays()
	fmt.Fprintf(w, "%s, CO2 -%s, %d missions, %s\n",
		tui.FormatPoints(prog.TotalPoints),
		tui.FormatCO2(prog.TotalCO2Reduction),
		prog.TotalMissionsCompleted,
		tui.FormatBadgeCount(reward.UnlockedCount(displays), len(displays)))
	if s := tracker.Summary(); s != nil {
		fmt.Fprintf(w, "%s: %.2f cedar trees\n", s.Month, s.CedarTrees)
	}
}
