package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"inlinable/internal/buildpipeline"
)

// RunProgress shows the progress model on out while work runs in the
// background. work receives a sink; events are closed when it returns.
func RunProgress(out io.Writer, title string, files []string, work func(sink buildpipeline.ProgressSink) error) error {
	events := make(chan buildpipeline.Event, 256)
	outcome := make(chan error, 1)

	go func() {
		err := work(buildpipeline.ChannelSink{Ch: events})
		close(events)
		outcome <- err
	}()

	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	err := <-outcome
	if uiErr != nil {
		return uiErr
	}
	return err
}
