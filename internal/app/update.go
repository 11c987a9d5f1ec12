package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/keymap"
	"github.com/marcus/reviewer/internal/msg"
	"github.com/marcus/reviewer/internal/plugin"
	"github.com/marcus/reviewer/internal/ui"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.MouseMsg:
		return m.handleMouseMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, m.forwardAll(tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()})

	case msg.ToastMsg:
		if message.IsError {
			m.logger.Warn("toast", "message", message.Message)
		}
		return m, m.showToast(message)

	case msg.ToastExpiredMsg:
		m.clearToast(message.Seq)
		return m, nil
	}

	// Forward other messages to ALL plugins (not just active) so async
	// results reach their owner.
	return m, m.forwardAll(message)
}

// forwardAll delivers message to every plugin.
func (m *Model) forwardAll(message tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	plugins := m.registry.Plugins()
	for i, p := range plugins {
		newPlugin, cmd := p.Update(message)
		plugins[i] = newPlugin
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.updateContext()
	return tea.Batch(cmds...)
}

// forwardActive delivers message to the focused plugin only.
func (m *Model) forwardActive(message tea.Msg) tea.Cmd {
	p := m.ActivePlugin()
	if p == nil {
		return nil
	}
	newPlugin, cmd := p.Update(message)
	plugins := m.registry.Plugins()
	if m.activePlugin < len(plugins) {
		plugins[m.activePlugin] = newPlugin
	}
	m.updateContext()
	return cmd
}

// handleKeyMsg processes keyboard input. Each key is resolved exactly once
// so multi-key sequences keep their pending state.
func (m Model) handleKeyMsg(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeModal() {
	case ModalQuitConfirm:
		return m.handleQuitKey(key)
	case ModalHelp:
		switch key.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	id := m.keymap.Resolve(key, m.activeContext)
	switch id {
	case "":
		return m, m.forwardActive(key)
	case keymap.CmdQuit:
		m.openQuitConfirm()
		return m, nil
	case keymap.CmdHelp:
		m.showHelp = true
		return m, nil
	}

	if c, ok := m.keymap.GetCommand(id); ok && c.Handler != nil {
		return m, c.Handler()
	}
	return m, m.forwardActive(plugin.CommandMsg{ID: id, Key: key})
}

func (m Model) handleQuitKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, m.quit()
	}
	switch m.quitDialog.HandleKey(key) {
	case ui.ActionConfirm:
		return m, m.quit()
	case ui.ActionCancel:
		m.showQuitConfirm = false
	}
	return m, nil
}

func (m *Model) openQuitConfirm() {
	d := ui.NewConfirmDialog("Quit reviewer?", "Are you sure you want to quit?")
	d.ConfirmLabel = " Quit "
	d.Width = ui.ModalWidthSmall
	m.quitDialog = d
	m.showQuitConfirm = true
}

func (m *Model) quit() tea.Cmd {
	m.showQuitConfirm = false
	m.registry.StopAll()
	return tea.Quit
}

// handleMouseMsg routes mouse input to the open modal, or to the active
// plugin in content coordinates.
func (m Model) handleMouseMsg(mm tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.activeModal() {
	case ModalQuitConfirm:
		switch m.quitDialog.HandleMouse(mm, m.mouseHandler) {
		case ui.ActionConfirm:
			return m, m.quit()
		case ui.ActionCancel:
			m.showQuitConfirm = false
		}
		return m, nil
	case ModalHelp:
		if mm.Action == tea.MouseActionPress && mm.Button == tea.MouseButtonLeft {
			m.showHelp = false
		}
		return m, nil
	}

	mm.Y -= m.headerHeight()
	if mm.Y < 0 {
		// A release above the content still has to end a drag.
		if mm.Action != tea.MouseActionRelease {
			return m, nil
		}
		mm.Y = 0
	}
	return m, m.forwardActive(mm)
}

// updateContext sets activeContext based on current state.
func (m *Model) updateContext() {
	if p := m.ActivePlugin(); p != nil {
		m.activeContext = p.FocusContext()
	} else {
		m.activeContext = keymap.ContextGlobal
	}
}
