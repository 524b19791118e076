package formatter

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/itinera/internal/teatest"
)

func TestSpinnerModel_ShowsMessageUntilDone(t *testing.T) {
	d := teatest.New(t, newSpinnerModel("Refining plan"))
	d.DrainInit()

	assert.Contains(t, stripANSI(d.View()), "Refining plan")
	assert.False(t, d.Quitting)

	boom := errors.New("boom")
	d.Send(spinnerDoneMsg{err: boom})

	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
	m := d.Model.(spinnerModel)
	assert.True(t, m.done)
	assert.ErrorIs(t, m.err, boom)
}

func TestSpinnerModel_IgnoresInputAfterQuit(t *testing.T) {
	d := teatest.New(t, newSpinnerModel("Working"))
	d.Send(spinnerDoneMsg{})
	n := len(d.Messages)

	d.Send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Len(t, d.Messages, n)
	_, last := d.Messages[len(d.Messages)-1].(tea.QuitMsg)
	assert.True(t, last)
}
