// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are drained in the calling
// goroutine. Cmds that block on timers, such as spinner ticks, are given a
// short deadline and dropped when they miss it.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds command chains so a self-scheduling model cannot loop.
const MaxDrainDepth = 100

// cmdTimeout separates message factories from timer-driven Cmds.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness for one tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool
	// Messages records every message delivered to Update, in order.
	Messages []tea.Msg
}

// New creates a Driver for model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	return &Driver{T: t, Model: model}
}

// DrainInit runs the model's Init command and drains what follows.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send delivers msg through Update and drains the resulting Cmds. Messages
// sent after the model quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.update(msg)
}

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) update(msg tea.Msg) {
	d.Messages = append(d.Messages, msg)
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := execCmdWithTimeout(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drainCmd(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Messages = append(d.Messages, msg)
		updated, _ := d.Model.Update(msg)
		d.Model = updated
	default:
		d.Messages = append(d.Messages, msg)
		updated, next := d.Model.Update(msg)
		d.Model = updated
		d.drainCmd(next, depth+1)
	}
}

// execCmdWithTimeout runs cmd and returns its message, or nil when cmd does
// not finish within cmdTimeout.
func execCmdWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
