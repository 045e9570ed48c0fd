package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"canon/internal/driver"
	"canon/internal/source"
	"canon/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.Result
	err     error
}

// runCheckWithUI drives a directory run behind the progress view.
func runCheckWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options, jobs int) (*source.FileSet, []driver.Result, error) {
	events := make(chan driver.Event, 256)
	opts.Progress = driver.ChannelSink{Ch: events}

	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		fs, results, err := driver.CanonicalizeDir(ctx, dir, opts, jobs)
		close(events)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		// UI упал: дочитываем события, чтобы не блокировать воркеры
		go func() {
			for range events {
			}
		}()
		outcome := <-outcomeCh
		if outcome.err != nil {
			return nil, nil, outcome.err
		}
		return outcome.fs, outcome.results, nil
	}

	outcome := <-outcomeCh
	return outcome.fs, outcome.results, outcome.err
}
