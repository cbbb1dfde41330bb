package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
)

func TestToastQueue_PushAndDismiss(t *testing.T) {
	q := toastQueue{duration: time.Millisecond}

	if cmd := q.push("Success: one", toastSuccess); cmd == nil {
		t.Fatal("push should schedule an expiry")
	}
	q.push("Error: failed to restore: two", toastError)
	if q.len() != 2 {
		t.Fatalf("len = %d, want 2", q.len())
	}

	first := q.items[0].id
	if first == q.items[1].id {
		t.Fatal("toast ids must be unique")
	}

	q.dismiss(first)
	if q.len() != 1 || q.items[0].message != "Error: failed to restore: two" {
		t.Errorf("after dismiss = %+v", q.items)
	}

	q.dismiss("unknown")
	if q.len() != 1 {
		t.Error("dismissing an unknown id should do nothing")
	}

	q.clear()
	if q.len() != 0 {
		t.Error("clear should remove every toast")
	}
}

func TestToastQueue_ExpiryCarriesID(t *testing.T) {
	q := toastQueue{duration: time.Millisecond}
	cmd := q.push("Success: x", toastSuccess)
	msg, ok := cmd().(toastExpiredMsg)
	if !ok {
		t.Fatalf("expiry msg = %T", cmd())
	}
	if msg.id != q.items[0].id {
		t.Errorf("expired id = %q, want %q", msg.id, q.items[0].id)
	}
}

func TestToastQueue_Render(t *testing.T) {
	q := toastQueue{duration: time.Second}
	if q.render(newStyles(config.ThemeLight), 80) != "" {
		t.Error("empty queue should render nothing")
	}
	q.push("Success: a", toastSuccess)
	q.push("Error: b\x1b[2J", toastError)

	out := q.render(newStyles(config.ThemeLight), 80)
	if !strings.Contains(out, "Success: a") || !strings.Contains(out, "Error: b") {
		t.Errorf("render = %q", out)
	}
	if strings.Contains(out, "\x1b[2J") {
		t.Error("toast text must be sanitized")
	}
}

func TestNotifyWording(t *testing.T) {
	msg := notifySuccess("restored deploy-a")().(notifyMsg)
	if msg.message != "Success: restored deploy-a" || msg.level != toastSuccess {
		t.Errorf("success = %+v", msg)
	}

	err := &domain.APIError{Type: domain.ErrServer, Status: 409, Message: "in use"}
	msg = notifyError("delete policy", err)().(notifyMsg)
	if msg.message != "Error: failed to delete policy: in use" || msg.level != toastError {
		t.Errorf("error = %+v", msg)
	}

	msg = notifyError("restore", errors.New("boom"))().(notifyMsg)
	if msg.message != "Error: failed to restore: boom" {
		t.Errorf("plain error = %q", msg.message)
	}
}
