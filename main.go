package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nwn-tracker/pkg/config"
	"nwn-tracker/pkg/processor"
	"nwn-tracker/pkg/stats"
	"nwn-tracker/pkg/ui"
	"nwn-tracker/pkg/watcher"
)

func main() {
	var (
		configPath string
		headless   bool
		flagLog    string
		flagPlayer string
		flagTarget string
		flagExact  bool
		flagLock   bool
	)

	root := &cobra.Command{
		Use:   "nwn-tracker",
		Short: "Live combat statistics from the NWN client log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if flagLog != "" {
				cfg.Tracker.LogPath = flagLog
			}
			if flagPlayer != "" {
				cfg.Tracker.Player = flagPlayer
			}
			if flagTarget != "" {
				cfg.Tracker.Target = flagTarget
			}
			if cmd.Flags().Changed("exact") {
				cfg.Tracker.ExactMatch = flagExact
			}
			if flagLock {
				cfg.Tracker.Target = ""
			}

			if headless {
				return runHeadless(cmd.Context(), cfg)
			}
			ui.Run(cfg, config.DefaultHistoryPath())
			return nil
		},
	}

	root.Flags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file")
	root.Flags().BoolVar(&headless, "headless", false, "print stats to the terminal instead of opening a window")
	root.Flags().StringVar(&flagLog, "log", "", "log file or logs directory")
	root.Flags().StringVar(&flagPlayer, "player", "", "player character name")
	root.Flags().StringVar(&flagTarget, "target", "", "target name filter")
	root.Flags().BoolVar(&flagExact, "exact", false, "match the target name exactly")
	root.Flags().BoolVar(&flagLock, "lock", false, "lock onto the first non-player combatant")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runHeadless(ctx context.Context, cfg config.Config) error {
	logPath := cfg.Tracker.LogPath
	if logPath == "" {
		logPath = config.AutoDetectLogDir()
	}
	logFile := watcher.ResolveLogPath(logPath)
	if logFile == "" {
		return fmt.Errorf("no client log found at %q", logPath)
	}

	player := cfg.Tracker.Player
	if player == "" {
		player = processor.DetectPlayerName(watcher.TailLines(logFile, 500))
		if player == "" {
			return fmt.Errorf("player name not configured and could not be detected")
		}
		fmt.Printf("Detected player: %s\n", player)
	}

	tracker := stats.New(stats.Config{
		PlayerName:   player,
		TargetFilter: cfg.Tracker.Target,
		ExactMatch:   cfg.Tracker.ExactMatch,
		LockMode:     cfg.Tracker.Target == "",
		Window:       time.Duration(cfg.Tracker.WindowSeconds) * time.Second,
	})

	watchErr := make(chan error, 1)
	go func() { watchErr <- watcher.Watch(ctx, logFile, tracker) }()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if rec, ok := tracker.Snapshot().Record(); ok {
				if err := stats.AppendHistory(config.DefaultHistoryPath(), rec); err != nil {
					fmt.Fprintf(os.Stderr, "failed to save encounter history: %v\n", err)
				}
			}
			return nil
		case err := <-watchErr:
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		case <-ticker.C:
			tracker.Refresh()
			// Clear and repaint.
			fmt.Print("\033[2J\033[H")
			fmt.Println(stats.Report(tracker.Snapshot(), time.Now()))
		}
	}
}
