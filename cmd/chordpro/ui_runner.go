package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"chordpro/internal/buildpipeline"
	"chordpro/internal/ui"
)

type bookOutcome struct {
	result buildpipeline.BookResult
	err    error
}

// runBookWithUI builds the songbook while a progress view runs on stderr.
func runBookWithUI(ctx context.Context, title string, files []string, req buildpipeline.BookRequest) (buildpipeline.BookResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan bookOutcome, 1)

	go func() {
		req.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.BuildBook(ctx, req)
		outcomeCh <- bookOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	// keep the builder from blocking if the view quit early
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
