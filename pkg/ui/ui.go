// Package ui is the fyne front end for the combat tracker.
package ui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"nwn-tracker/pkg/config"
	"nwn-tracker/pkg/processor"
	"nwn-tracker/pkg/stats"
	"nwn-tracker/pkg/watcher"
)

const tailScanLines = 500

// Run sets up and runs the tracker window.
func Run(cfg config.Config, historyPath string) {
	a := app.NewWithID("io.nwn.tracker")
	window := a.NewWindow("NWN Combat Tracker")
	window.Resize(fyne.NewSize(550, 780))

	prefs := a.Preferences()

	sess := &session{}

	// Config fields
	playerEntry := widget.NewEntry()
	playerEntry.SetText(cfg.Tracker.Player)

	targetEntry := widget.NewEntry()
	targetEntry.SetText(cfg.Tracker.Target)
	exactCheck := widget.NewCheck("Exact", nil)
	exactCheck.SetChecked(cfg.Tracker.ExactMatch)

	logEntry := widget.NewEntry()
	switch {
	case cfg.Tracker.LogPath != "":
		logEntry.SetText(cfg.Tracker.LogPath)
	case prefs.String("logPath") != "":
		logEntry.SetText(prefs.String("logPath"))
	default:
		logEntry.SetText(config.AutoDetectLogDir())
	}

	presetNames := make([]string, 0, len(cfg.Targets))
	for alias, full := range cfg.Targets {
		if full != "" {
			presetNames = append(presetNames, alias)
		}
	}
	sort.Strings(presetNames)
	presetSelect := widget.NewSelect(presetNames, func(alias string) {
		if full := cfg.Targets[alias]; full != "" {
			targetEntry.SetText(full)
			exactCheck.SetChecked(true)
		}
	})
	presetSelect.PlaceHolder = "(preset)"

	statusLabel := widget.NewLabel("Stopped")
	statsLabel := widget.NewLabel("")
	statsLabel.TextStyle = fyne.TextStyle{Monospace: true}
	statsLabel.Wrapping = fyne.TextWrapWord

	historyLabel := widget.NewLabel("")
	historyLabel.TextStyle = fyne.TextStyle{Monospace: true}
	refreshHistory := func() {
		historyLabel.SetText(formatHistory(stats.LoadHistory(historyPath)))
	}
	refreshHistory()

	saveEncounter := func() {
		tracker := sess.current()
		if tracker == nil {
			return
		}
		if rec, ok := tracker.Snapshot().Record(); ok {
			if err := stats.AppendHistory(historyPath, rec); err == nil {
				refreshHistory()
			}
		}
	}

	detectBtn := widget.NewButton("Detect", func() {
		logFile := watcher.ResolveLogPath(logEntry.Text)
		if logFile == "" {
			dialog.ShowInformation("Detect Player", "No log file found.", window)
			return
		}
		name := processor.DetectPlayerName(watcher.TailLines(logFile, tailScanLines))
		if name == "" {
			dialog.ShowInformation("Detect Player",
				"Could not detect player name.\nTry gaining XP or using a heal potion, then detect again.", window)
			return
		}
		playerEntry.SetText(name)
	})

	var startBtn *widget.Button
	stop := func() {
		sess.stop()
		saveEncounter()
		startBtn.SetText("Start Tracking")
		statusLabel.SetText("Stopped")
	}

	start := func() {
		player := playerEntry.Text
		if player == "" {
			dialog.ShowError(fmt.Errorf("please enter your player name"), window)
			return
		}
		logFile := watcher.ResolveLogPath(logEntry.Text)
		if logFile == "" {
			dialog.ShowError(fmt.Errorf("no client log found at %q", logEntry.Text), window)
			return
		}
		prefs.SetString("logPath", logEntry.Text)

		target := targetEntry.Text
		tracker := stats.New(stats.Config{
			PlayerName:   player,
			TargetFilter: target,
			ExactMatch:   exactCheck.Checked,
			LockMode:     target == "",
			Window:       time.Duration(cfg.Tracker.WindowSeconds) * time.Second,
		})

		ctx, cancel := context.WithCancel(context.Background())
		go watcher.Watch(ctx, logFile, tracker)
		sess.start(tracker, cancel)

		startBtn.SetText("Stop Tracking")
		if target == "" {
			statusLabel.SetText("Waiting to lock...")
		} else {
			statusLabel.SetText("Tracking")
		}
	}

	startBtn = widget.NewButton("Start Tracking", func() {
		if sess.isRunning() {
			stop()
		} else {
			start()
		}
	})

	newTargetBtn := widget.NewButton("New Target", func() {
		tracker := sess.current()
		if tracker == nil {
			return
		}
		saveEncounter()
		tracker.NewTarget()
		targetEntry.SetText("")
		statusLabel.SetText("Waiting to lock...")
	})

	resetBtn := widget.NewButton("Reset", func() {
		if tracker := sess.current(); tracker != nil {
			tracker.Reset()
		}
	})

	// Render ticker: refresh the rolling window and repaint once a
	// second while tracking.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			tracker := sess.active()
			if tracker == nil {
				continue
			}
			tracker.Refresh()
			snap := tracker.Snapshot()
			report := stats.Report(snap, time.Now())
			fyne.Do(func() {
				statsLabel.SetText(report)
				// Lock mode: surface the adopted target in the field.
				if snap.LockMode && snap.TargetName != "" && targetEntry.Text == "" {
					targetEntry.SetText(snap.TargetName)
					exactCheck.SetChecked(true)
					statusLabel.SetText("Locked")
				}
			})
		}
	}()

	form := widget.NewForm(
		widget.NewFormItem("Player", container.NewBorder(nil, nil, nil, detectBtn, playerEntry)),
		widget.NewFormItem("Target", container.NewBorder(nil, nil, nil, exactCheck, targetEntry)),
		widget.NewFormItem("Preset", presetSelect),
		widget.NewFormItem("Log", logEntry),
	)
	buttons := container.NewHBox(startBtn, newTargetBtn, resetBtn, statusLabel)

	trackerTab := container.NewBorder(
		container.NewVBox(form, buttons), nil, nil, nil,
		container.NewVScroll(statsLabel),
	)
	tabs := container.NewAppTabs(
		container.NewTabItem("Tracker", trackerTab),
		container.NewTabItem("History", container.NewVScroll(historyLabel)),
	)

	window.SetContent(tabs)
	window.ShowAndRun()
}

func formatHistory(recs []stats.EncounterRecord) string {
	if len(recs) == 0 {
		return "No encounters recorded yet."
	}
	out := ""
	// Newest first.
	for i := len(recs) - 1; i >= 0; i-- {
		r := recs[i]
		result := "fled"
		if r.Killed {
			result = "killed"
		}
		out += fmt.Sprintf("[%s] %s  %s in %ds  %d/%d/%d h/m/c  %d dealt  %d taken\n",
			r.StartedAt.Local().Format("02.01.2006 15:04"), r.Target, result,
			r.DurationSec, r.Hits, r.Misses, r.Crits, r.DamageDealt, r.DamageTaken)
	}
	return out
}
