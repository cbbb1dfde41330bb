package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
	"github.com/wcrum/krb-tui/internal/logging"
)

func newTestGateway() *domain.MockGateway {
	return &domain.MockGateway{
		Items: []domain.RecycleItem{
			{Name: "deploy-a", ObjectKey: "apps/v1/Deployment/default/a", ObjectAPIVersion: "apps/v1", ObjectKind: "Deployment", ObjectNamespace: "default", Age: "1h5m"},
			{Name: "cm-b", ObjectKey: "v1/ConfigMap/shop-prod/b", ObjectAPIVersion: "v1", ObjectKind: "ConfigMap", ObjectNamespace: "shop-prod", Age: "45s"},
			{Name: "ns-c", ObjectKey: "v1/Namespace/c", ObjectAPIVersion: "v1", ObjectKind: "Namespace", Age: "2h15m30s"},
		},
		Policies: []domain.RecyclePolicy{
			{Name: "deployments", Group: "apps", Resource: "deployments", Namespaces: []string{"default"}, Age: "3h"},
			{Name: "configmaps", Group: "", Resource: "configmaps", Namespaces: nil, Age: "10m"},
			{Name: "prod-secrets", Group: "", Resource: "secrets", Namespaces: []string{"dev", "shop-prod"}, Age: "1m"},
		},
		Document:       "apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: a\n",
		RestoreMessage: "Successfully restored apps/v1/Deployment/default/a",
		CreateMessage:  "Successfully created RecyclePolicy p1",
		DeleteMessage:  "Successfully deleted RecyclePolicy deployments",
	}
}

func testSettings(t *testing.T) Settings {
	cfg := config.DefaultConfig()
	cfg.Notifications.Duration = time.Millisecond
	return Settings{
		Config:    cfg,
		Logger:    logging.Discard(),
		StatePath: filepath.Join(t.TempDir(), "state.yaml"),
		Endpoint:  "http://localhost:8080",
	}
}

// newTestModel returns a sized model whose item list is already loaded.
func newTestModel(t *testing.T) Model {
	t.Helper()
	mock := newTestGateway()
	factory := func() (domain.RecycleGateway, error) {
		return mock, nil
	}
	m := NewModel(mock, factory, testSettings(t))
	m.width = 120
	m.height = 30
	return run(m, m.items.Refresh())
}

func mockOf(m Model) *domain.MockGateway {
	return m.items.gateway.(*domain.MockGateway)
}

// collect executes cmd and flattens batches, like the runtime does.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// run feeds every message produced by cmd back into m, synchronously and in
// order. Toast expiry and spinner ticks are dropped so assertions can see
// toasts and the loop terminates.
func run(m Model, cmd tea.Cmd) Model {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case nil, spinner.TickMsg, toastExpiredMsg, tea.QuitMsg:
			continue
		}
		updated, next := m.Update(msg)
		m = updated.(Model)
		m = run(m, next)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, k tea.KeyMsg) Model {
	updated, cmd := m.Update(k)
	return run(updated.(Model), cmd)
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = press(m, runes(string(r)))
	}
	return m
}

// runController drives a controller on its own, with notifications
// collected instead of shown.
func runController(update func(tea.Msg) (tea.Cmd, bool), cmd tea.Cmd) []notifyMsg {
	var notes []notifyMsg
	for _, msg := range collect(cmd) {
		if n, ok := msg.(notifyMsg); ok {
			notes = append(notes, n)
			continue
		}
		next, _ := update(msg)
		notes = append(notes, runController(update, next)...)
	}
	return notes
}

func itemNames(items []domain.RecycleItem) []string {
	n := make([]string, len(items))
	for i, it := range items {
		n[i] = it.Name
	}
	return n
}

func policyNames(policies []domain.RecyclePolicy) []string {
	n := make([]string, len(policies))
	for i, p := range policies {
		n[i] = p.Name
	}
	return n
}
