package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/wcrum/krb-tui/internal/domain"
)

type toastLevel int

const (
	toastSuccess toastLevel = iota
	toastError
)

type toast struct {
	id      string
	message string
	level   toastLevel
}

// notifyMsg asks the Model to show a toast.
type notifyMsg struct {
	message string
	level   toastLevel
}

type toastExpiredMsg struct{ id string }

func notify(level toastLevel, message string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{message: message, level: level}
	}
}

func notifySuccess(message string) tea.Cmd {
	return notify(toastSuccess, "Success: "+message)
}

// notifyError words a failed action, e.g. "Error: failed to restore: in use".
func notifyError(action string, err error) tea.Cmd {
	return notify(toastError, fmt.Sprintf("Error: failed to %s: %s", action, domain.ErrorMessage(err)))
}

// toastQueue holds every visible toast. New toasts append and each one
// expires on its own timer.
type toastQueue struct {
	items    []toast
	duration time.Duration
}

func (q *toastQueue) push(message string, level toastLevel) tea.Cmd {
	t := toast{id: uuid.NewString(), message: message, level: level}
	q.items = append(q.items, t)
	return tea.Tick(q.duration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: t.id}
	})
}

func (q *toastQueue) dismiss(id string) {
	for i, t := range q.items {
		if t.id == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return
		}
	}
}

func (q *toastQueue) clear() {
	q.items = nil
}

func (q toastQueue) len() int {
	return len(q.items)
}

func (q toastQueue) render(s styles, width int) string {
	if len(q.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(q.items))
	for _, t := range q.items {
		msg := truncate(sanitizeLine(t.message), max(width-4, 1))
		switch t.level {
		case toastError:
			lines = append(lines, "  "+s.toastError.Render(msg))
		default:
			lines = append(lines, "  "+s.toastSuccess.Render(msg))
		}
	}
	return strings.Join(lines, "\n")
}
