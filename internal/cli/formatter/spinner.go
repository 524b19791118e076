package formatter

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type spinnerDoneMsg struct{ err error }

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(StylePurple),
	)
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return "  " + m.spinner.View() + " " + Dim(m.message)
}

// RunWithSpinner runs fn while an animated spinner with message is drawn on
// w. The line is cleared when fn returns. fn's error is returned unchanged.
func RunWithSpinner(w io.Writer, message string, fn func() error) error {
	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(w), tea.WithInput(nil))

	result := make(chan error, 1)
	go func() {
		err := fn()
		result <- err
		p.Send(spinnerDoneMsg{err: err})
	}()

	// A program that cannot drive the terminal only loses the animation.
	_, _ = p.Run()
	return <-result
}
