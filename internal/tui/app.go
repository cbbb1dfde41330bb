package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
	"github.com/wcrum/krb-tui/internal/highlight"
)

// ClientFactory creates a new RecycleGateway (used for retry from the error screen).
type ClientFactory func() (domain.RecycleGateway, error)

// Settings carries everything the Model needs besides the gateway.
type Settings struct {
	Config    *config.AppConfig
	Logger    logrus.FieldLogger
	StatePath string // theme persistence, empty disables it
	Endpoint  string // shown in the header
}

// --- Pages ---

type Page int

const (
	PageItems Page = iota
	PagePolicies
	PageError // startup error screen
)

func (p Page) String() string {
	switch p {
	case PageItems:
		return "ITEMS"
	case PagePolicies:
		return "POLICIES"
	default:
		return ""
	}
}

// --- Messages ---

type themeSaveFailedMsg struct{ err error }

// clipboardOut receives OSC52 sequences. The TUI draws on stdout, so the
// sequence goes to stderr, which is still the terminal.
var clipboardOut io.Writer = os.Stderr

// --- Model ---

type Model struct {
	factory ClientFactory

	items    *ItemsController
	policies *PoliciesController

	page       Page
	startupErr error

	// UI state
	width   int
	height  int
	toasts  toastQueue
	spinner spinner.Model

	// Filter
	filter    textinput.Model
	filtering bool

	// Theme
	theme     config.Theme
	styles    styles
	statePath string

	endpoint string
	log      logrus.FieldLogger
	cfg      *config.AppConfig
}

func NewModel(gateway domain.RecycleGateway, factory ClientFactory, s Settings) Model {
	if s.Config == nil {
		s.Config = config.DefaultConfig()
	}
	if s.Logger == nil {
		s.Logger = logrus.StandardLogger()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := config.LoadTheme(s.StatePath)
	m := Model{
		factory:   factory,
		items:     NewItemsController(gateway, s.Logger, s.Config.ProdPatterns),
		policies:  NewPoliciesController(gateway, s.Logger, s.Config.ProdPatterns),
		page:      PageItems,
		toasts:    toastQueue{duration: s.Config.Notifications.Duration},
		spinner:   sp,
		filter:    newInput("filter...", 64),
		theme:     theme,
		styles:    newStyles(theme),
		statePath: s.StatePath,
		endpoint:  s.Endpoint,
		log:       s.Logger,
		cfg:       s.Config,
	}
	m.spinner.Style = m.styles.spinner
	return m
}

func NewModelWithError(err error, factory ClientFactory, s Settings) Model {
	m := NewModel(nil, factory, s)
	m.page = PageError
	m.startupErr = err
	return m
}

func (m Model) Init() tea.Cmd {
	if m.page == PageError {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.items.Refresh())
}

// Theme returns the active theme.
func (m Model) Theme() config.Theme { return m.theme }

// CurrentPage returns the active page.
func (m Model) CurrentPage() Page { return m.page }

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notifyMsg:
		return m, m.toasts.push(msg.message, msg.level)

	case toastExpiredMsg:
		m.toasts.dismiss(msg.id)
		return m, nil

	case themeSaveFailedMsg:
		m.log.WithError(msg.err).Warn("saving theme failed")
		return m, m.toasts.push("Error: failed to save theme: "+msg.err.Error(), toastError)
	}

	if cmd, ok := m.items.Update(msg); ok {
		return m, cmd
	}
	if cmd, ok := m.policies.Update(msg); ok {
		return m, cmd
	}
	return m, nil
}

// SwitchPage activates p and always reloads it.
func (m Model) SwitchPage(p Page) (Model, tea.Cmd) {
	m.page = p
	m.filtering = false
	m.filter.Blur()
	m.filter.SetValue("")
	switch p {
	case PagePolicies:
		m.policies.SetFilter("")
		return m, m.policies.Refresh()
	default:
		m.items.SetFilter("")
		return m, m.items.Refresh()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Startup error screen: only q/r
	if m.page == PageError {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.factory == nil {
				return m, nil
			}
			gw, err := m.factory()
			if err != nil {
				m.startupErr = err
				return m, nil
			}
			m.items.SetGateway(gw)
			m.policies.SetGateway(gw)
			m.startupErr = nil
			return m.SwitchPage(PageItems)
		}
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Dialogs capture all input
	switch {
	case m.items.document.IsActive():
		return m.handleDocumentKey(msg)
	case m.items.restore.IsActive():
		return m.handleRestoreKey(msg)
	case m.policies.create.IsActive():
		return m.handleCreateKey(msg)
	case m.policies.delete.IsActive():
		return m.handleDeleteKey(msg)
	}

	if m.filtering {
		return m.handleFilterInput(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Escape):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.toasts.clear()
		return m, nil

	case key.Matches(msg, keys.Tab1):
		return m.SwitchPage(PageItems)
	case key.Matches(msg, keys.Tab2):
		return m.SwitchPage(PagePolicies)
	case key.Matches(msg, keys.TabNext):
		if m.page == PageItems {
			return m.SwitchPage(PagePolicies)
		}
		return m.SwitchPage(PageItems)

	case key.Matches(msg, keys.Refresh):
		return m, m.refreshCurrent()

	case key.Matches(msg, keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, nil

	case key.Matches(msg, keys.Sort):
		if m.page == PageItems {
			m.items.CycleSort()
		} else {
			m.policies.CycleSort()
		}
		return m, nil

	case key.Matches(msg, keys.Theme):
		return m.toggleTheme()

	// Navigation
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.PageDown):
		m.moveCursor(20)
	case key.Matches(msg, keys.PageUp):
		m.moveCursor(-20)
	case key.Matches(msg, keys.Top):
		if m.page == PageItems {
			m.items.cursor = 0
		} else {
			m.policies.cursor = 0
		}
	case key.Matches(msg, keys.Bottom):
		if m.page == PageItems {
			m.items.cursorToEnd()
		} else {
			m.policies.cursorToEnd()
		}

	// Actions
	case key.Matches(msg, keys.View):
		if m.page == PageItems {
			if it, ok := m.items.Selected(); ok {
				return m, m.items.OpenDocument(it.Name)
			}
		}
	case key.Matches(msg, keys.Restore):
		if m.page == PageItems {
			if it, ok := m.items.Selected(); ok {
				m.items.OpenRestore(it.Name)
			}
		}
	case key.Matches(msg, keys.Create):
		if m.page == PagePolicies {
			m.policies.OpenCreate()
		}
	case key.Matches(msg, keys.Delete):
		if m.page == PagePolicies {
			if p, ok := m.policies.Selected(); ok {
				m.policies.OpenDelete(p.Name)
			}
		}
	}

	return m, nil
}

// --- Key Handlers ---

func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		if msg.String() == "esc" {
			m.filter.SetValue("")
		}
		m.applyFilter()
		return m, nil
	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}
}

func (m Model) handleDocumentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc := &m.items.doc
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Quit):
		m.items.CloseDocument()
	case key.Matches(msg, keys.Down):
		doc.scrollDown(1, m.documentHeight())
	case key.Matches(msg, keys.Up):
		doc.scrollUp(1)
	case key.Matches(msg, keys.PageDown):
		doc.scrollDown(20, m.documentHeight())
	case key.Matches(msg, keys.PageUp):
		doc.scrollUp(20)
	case key.Matches(msg, keys.Top):
		doc.offset = 0
	case key.Matches(msg, keys.Bottom):
		doc.jumpToBottom(m.documentHeight())
	case key.Matches(msg, keys.Copy):
		if _, busy := doc.body(); busy || doc.content == "" {
			return m, nil
		}
		return m, copyToClipboard(doc.content)
	}
	return m, nil
}

func (m Model) handleRestoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || m.items.restore.IsSubmitting() {
		if msg.String() == "esc" {
			m.items.CancelRestore()
		}
		return m, nil
	}
	result, cmd := m.items.confirm.update(msg)
	switch result {
	case confirmAccepted:
		return m, m.items.ConfirmRestore(m.items.restore.Target)
	case confirmRejected:
		m.items.CancelRestore()
		return m, nil
	}
	return m, cmd
}

func (m Model) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || m.policies.delete.IsSubmitting() {
		if msg.String() == "esc" {
			m.policies.CancelDelete()
		}
		return m, nil
	}
	result, cmd := m.policies.confirm.update(msg)
	switch result {
	case confirmAccepted:
		return m, m.policies.ConfirmDelete(m.policies.delete.Target)
	case confirmRejected:
		m.policies.CancelDelete()
		return m, nil
	}
	return m, cmd
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pc := m.policies
	if msg.String() == "esc" {
		pc.CancelCreate()
		return m, nil
	}
	if pc.create.IsSubmitting() {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		return m, pc.SubmitCreate(pc.form.values())
	case "tab", "down":
		pc.form.next()
		return m, nil
	case "shift+tab", "up":
		pc.form.prev()
		return m, nil
	}
	return m, pc.form.update(msg)
}

func (m Model) refreshCurrent() tea.Cmd {
	if m.page == PagePolicies {
		return m.policies.Refresh()
	}
	return m.items.Refresh()
}

func (m Model) moveCursor(delta int) {
	if m.page == PagePolicies {
		m.policies.moveCursor(delta)
		return
	}
	m.items.moveCursor(delta)
}

func (m Model) applyFilter() {
	if m.page == PagePolicies {
		m.policies.SetFilter(m.filter.Value())
		return
	}
	m.items.SetFilter(m.filter.Value())
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme = m.theme.Toggle()
	m.styles = newStyles(m.theme)
	m.spinner.Style = m.styles.spinner

	path, theme := m.statePath, m.theme
	return m, func() tea.Msg {
		if err := config.SaveTheme(path, theme); err != nil {
			return themeSaveFailedMsg{err: err}
		}
		return nil
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if _, err := osc52.New(text).WriteTo(clipboardOut); err != nil {
			return notifyMsg{message: "Error: failed to copy to clipboard: " + err.Error(), level: toastError}
		}
		return notifyMsg{message: "Success: copied to clipboard", level: toastSuccess}
	}
}

// --- Layout ---

func (m Model) contentHeight() int {
	// header(1) + tabs(1) + blank(1) + col_header(1) + status_bar(1) + toasts
	ch := m.height - 6 - m.toasts.len()
	if ch < 1 {
		return 1
	}
	return ch
}

func (m Model) documentHeight() int {
	return max(m.contentHeight()-1, 1)
}

// --- View ---

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.page == PageError {
		return m.renderErrorScreen()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch {
	case m.items.document.IsActive():
		b.WriteString(renderDocument(&m.items.doc, m.styles, m.items.document.Target, m.width, m.documentHeight()))
	case m.items.restore.IsActive():
		busy := ""
		if m.items.restore.IsSubmitting() {
			busy = m.spinner.View() + " Restoring..."
		}
		b.WriteString("\n" + m.items.confirm.view(m.styles, m.width, busy) + "\n")
	case m.policies.create.IsActive():
		b.WriteString("\n" + m.policies.form.view(m.styles, m.width, m.policies.create.IsSubmitting()) + "\n")
	case m.policies.delete.IsActive():
		busy := ""
		if m.policies.delete.IsSubmitting() {
			busy = m.spinner.View() + " Deleting..."
		}
		b.WriteString("\n" + m.policies.confirm.view(m.styles, m.width, busy) + "\n")
	default:
		b.WriteString(m.renderContent())
	}

	if m.filtering {
		b.WriteString(fmt.Sprintf("  /%s", m.filter.View()))
		b.WriteString("\n")
	}

	// Fill remaining space
	lines := strings.Count(b.String(), "\n")
	for i := lines; i < m.height-1-m.toasts.len(); i++ {
		b.WriteString("\n")
	}

	if t := m.toasts.render(m.styles, m.width); t != "" {
		b.WriteString(t)
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.title.Render("KRB TUI")
	if m.endpoint == "" {
		return " " + title
	}
	return fmt.Sprintf(" %s  %s", title, m.styles.endpoint.Render(sanitizeLine(m.endpoint)))
}

func (m Model) renderTabs() string {
	tabs := []struct {
		page  Page
		key   string
		label string
	}{
		{PageItems, "1", "Recycle Items"},
		{PagePolicies, "2", "Recycle Policies"},
	}

	var parts []string
	for _, t := range tabs {
		label := fmt.Sprintf("[%s] %s", t.key, t.label)
		if m.page == t.page {
			parts = append(parts, m.styles.tabActive.Render(label))
		} else {
			parts = append(parts, m.styles.tabInactive.Render(label))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderContent() string {
	ch := m.contentHeight()
	switch m.page {
	case PagePolicies:
		list := m.policies.list
		switch list.Phase {
		case PhaseLoading:
			return "\n  " + m.spinner.View() + " Loading recycle policies...\n"
		case PhaseFailed:
			return m.renderListError("Failed to load recycle policies", list.Err)
		case PhaseLoaded:
			return renderPolicyList(m.policies.Visible(), m.policies.sort, m.styles, m.policies.cursor, m.width, ch)
		}
	default:
		list := m.items.list
		switch list.Phase {
		case PhaseLoading:
			return "\n  " + m.spinner.View() + " Loading recycle items...\n"
		case PhaseFailed:
			return m.renderListError("Failed to load recycle items", list.Err)
		case PhaseLoaded:
			return renderItemList(m.items.Visible(), m.items.sort, m.styles, m.items.cursor, m.width, ch)
		}
	}
	return ""
}

func (m Model) renderListError(prefix, message string) string {
	text := fmt.Sprintf("Error: %s: %s", prefix, sanitizeLine(message))
	return "\n  " + m.styles.errorText.Render(text) + "\n  " + m.styles.muted.Render("press r to retry") + "\n"
}

func (m Model) renderStatusBar() string {
	var helpText, itemInfo string
	switch {
	case m.items.document.IsActive():
		helpText = documentHelpKeys()
		itemInfo = fmt.Sprintf("%d lines", len(m.items.doc.lines))
	case m.page == PagePolicies:
		helpText = policyHelpKeys()
		itemInfo = fmt.Sprintf("%d policies", len(m.policies.Visible()))
	default:
		helpText = itemHelpKeys()
		itemInfo = fmt.Sprintf("%d items", len(m.items.Visible()))
	}

	left := fmt.Sprintf(" %s | %s | %s", m.page.String(), itemInfo, m.theme)
	return m.styles.statusBar.Width(m.width).Render(left + "  " + helpText)
}

func (m Model) renderErrorScreen() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.errorScreen.Render("KRB TUI - connection error"))
	b.WriteString("\n\n")
	if m.startupErr != nil {
		b.WriteString(fmt.Sprintf("  %s\n", sanitizeLine(domain.ErrorMessage(m.startupErr))))
	}
	b.WriteString("\n")
	b.WriteString("  [r] Retry  [q] Quit\n")

	lines := strings.Count(b.String(), "\n")
	for i := lines; i < m.height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

// --- Helpers ---

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}

// sanitizeLine flattens server text onto one terminal-safe line.
func sanitizeLine(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return highlight.Sanitize(s)
}
