// Package menu implements the interactive boot menu: a top level choice
// between booting directly, editing kernel options and rebooting.
package menu

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/systemboot/enterprise/pkg/bootoptions"
	"github.com/systemboot/enterprise/pkg/platform"
)

// State is a state of the menu.
type State int

// Menu states. Booting, Rebooting and Failed are terminal.
const (
	AwaitingChoice State = iota
	EditingOptions
	Booting
	Rebooting
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitingChoice:
		return "awaiting-choice"
	case EditingOptions:
		return "editing-options"
	case Booting:
		return "booting"
	case Rebooting:
		return "rebooting"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the menu stops in this state.
func (s State) Terminal() bool {
	return s == Booting || s == Rebooting || s == Failed
}

// Result is the outcome of a menu session.
type Result struct {
	// State is Booting or Rebooting.
	State State
	// Params is the kernel parameter string to boot with.
	Params string
}

// Menu is one interactive session. It is not reusable once terminal.
type Menu struct {
	console platform.Console
	input   platform.KeyInput
	options *bootoptions.Set
	log     *zap.Logger

	state  State
	params string
	err    error
}

// New returns a menu in the AwaitingChoice state. options is reset every time
// the option screen is entered.
func New(console platform.Console, input platform.KeyInput, options *bootoptions.Set, log *zap.Logger) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	return &Menu{
		console: console,
		input:   input,
		options: options,
		log:     log,
		state:   AwaitingChoice,
	}
}

// State returns the current state.
func (m *Menu) State() State {
	return m.state
}

// Run drives the menu until it reaches a terminal state. A keyboard failure
// aborts the session and is returned as is.
func (m *Menu) Run() (Result, error) {
	for !m.state.Terminal() {
		m.Step()
	}
	if m.state == Failed {
		return Result{State: Failed}, m.err
	}
	return Result{State: m.state, Params: m.params}, nil
}

// Step draws the current screen, reads one key and performs the resulting
// transition. It does nothing in a terminal state.
func (m *Menu) Step() {
	switch m.state {
	case AwaitingChoice:
		m.awaitChoice()
	case EditingOptions:
		m.editOptions()
	}
}

func (m *Menu) readKey() (platform.Key, bool) {
	key, err := platform.ReadKey(m.input)
	if err != nil {
		m.log.Error("key read failed", zap.Stringer("state", m.state), zap.Error(err))
		m.err = err
		m.transition(Failed)
		return 0, false
	}
	m.log.Debug("key pressed", zap.Stringer("state", m.state), zap.Stringer("key", key))
	return key, true
}

func (m *Menu) transition(to State) {
	m.log.Debug("menu transition", zap.Stringer("from", m.state), zap.Stringer("to", to))
	m.state = to
}

func (m *Menu) awaitChoice() {
	m.drawMain()

	key, ok := m.readKey()
	if !ok {
		return
	}

	switch key.Char() {
	case '1':
		m.params = ""
		m.transition(Booting)
	case '2':
		m.options.Reset()
		m.transition(EditingOptions)
	default:
		m.transition(Rebooting)
	}
}

func (m *Menu) editOptions() {
	m.drawOptions()

	key, ok := m.readKey()
	if !ok {
		return
	}

	c := key.Char()
	switch {
	case c == '0':
		m.params = m.options.Render()
		m.transition(Booting)
	case c >= '1' && c <= '0'+rune(bootoptions.Count):
		// range checked above, Toggle cannot fail
		_ = m.options.Toggle(int(c - '1'))
	default:
		m.log.Debug("ignoring key", zap.Stringer("key", key))
	}
}
