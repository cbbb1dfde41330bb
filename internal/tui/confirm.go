package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmMode int

const (
	confirmNone   confirmMode = iota
	confirmSimple             // y/N prompt
	confirmProd               // type the full name
)

type confirmResult int

const (
	confirmPending confirmResult = iota
	confirmAccepted
	confirmRejected
)

// confirmState is the input side of a restore or delete dialog. The dialog
// phase itself lives in the owning controller.
type confirmState struct {
	mode       confirmMode
	action     string // "Restore", "Delete policy"
	target     string
	namespaces string
	input      textinput.Model
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newConfirmState() confirmState {
	return confirmState{input: newInput("", 253)}
}

func (cs *confirmState) activate(action, target, namespaces string, isProd bool) {
	cs.action = action
	cs.target = target
	cs.namespaces = namespaces
	if isProd {
		cs.mode = confirmProd
		cs.input.Placeholder = target
		cs.input.SetValue("")
		cs.input.Focus()
	} else {
		cs.mode = confirmSimple
	}
}

func (cs *confirmState) reset() {
	cs.mode = confirmNone
	cs.action = ""
	cs.target = ""
	cs.namespaces = ""
	cs.input.SetValue("")
	cs.input.Blur()
}

func (cs *confirmState) isActive() bool {
	return cs.mode != confirmNone
}

func (cs *confirmState) isProd() bool {
	return cs.mode == confirmProd
}

// update never closes the prompt itself; the caller acts on the result.
func (cs *confirmState) update(msg tea.KeyMsg) (confirmResult, tea.Cmd) {
	switch cs.mode {
	case confirmSimple:
		switch msg.String() {
		case "y", "Y", "enter":
			return confirmAccepted, nil
		case "n", "N", "esc", "q":
			return confirmRejected, nil
		}
		return confirmPending, nil

	case confirmProd:
		switch msg.String() {
		case "esc":
			return confirmRejected, nil
		case "enter":
			if strings.TrimSpace(cs.input.Value()) == cs.target {
				return confirmAccepted, nil
			}
			return confirmPending, nil // wrong name, stay
		default:
			var cmd tea.Cmd
			cs.input, cmd = cs.input.Update(msg)
			return confirmPending, cmd
		}
	}
	return confirmPending, nil
}

// view renders the prompt. busy replaces the action hint while the request
// is in flight.
func (cs *confirmState) view(s styles, width int, busy string) string {
	if !cs.isActive() {
		return ""
	}
	target := sanitizeLine(cs.target)
	switch cs.mode {
	case confirmSimple:
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s ?\n", cs.action, s.dialogTarget.Render(target))
		if cs.namespaces != "" {
			fmt.Fprintf(&b, "Namespace: %s\n", sanitizeLine(cs.namespaces))
		}
		b.WriteString("\n")
		if busy != "" {
			b.WriteString(s.muted.Render(busy + "  [esc] close"))
		} else {
			b.WriteString("[y] Confirm  [n/esc] Cancel")
		}
		return s.dialog.Width(min(width-4, 72)).Render(b.String())

	case confirmProd:
		hint := "[enter] Confirm  [esc] Cancel"
		if busy != "" {
			hint = busy + "  [esc] close"
		}
		box := fmt.Sprintf(
			"PRODUCTION NAMESPACE\n\n"+
				"Action    : %s\n"+
				"Target    : %s\n"+
				"Namespace : %s\n\n"+
				"Type \"%s\" to confirm:\n"+
				"> %s\n\n"+
				"%s",
			cs.action, target, sanitizeLine(cs.namespaces),
			target, cs.input.View(),
			hint,
		)
		return s.bannerProd.Width(min(width-4, 72)).Render(box)
	}
	return ""
}
