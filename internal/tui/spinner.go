package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jakoblorz/drupal-init/internal/models"
)

type workDoneMsg struct {
	err error
}

// spinnerModel shows a spinner until the work reports back
type spinnerModel struct {
	spinner spinner.Model
	title   string
	err     error
	done    bool
	aborted bool
}

func newSpinnerModel(title string) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(SelectedStyle),
		),
		title: title,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.title)
}

// RunWithSpinner runs work while a spinner with title is drawn to out.
// Pressing ctrl+c cancels the context handed to work.
func RunWithSpinner(ctx context.Context, out io.Writer, title string, work func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(title), tea.WithOutput(out), tea.WithContext(ctx))

	result := make(chan error, 1)
	go func() {
		err := work(ctx)
		result <- err
		p.Send(workDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-result
		if errors.Is(err, tea.ErrInterrupted) {
			return models.ErrAborted
		}
		return fmt.Errorf("failed to run spinner: %w", err)
	}

	if m, ok := final.(spinnerModel); ok && m.aborted {
		cancel()
		<-result
		return models.ErrAborted
	}

	return <-result
}
