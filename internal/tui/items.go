package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
)

type itemsLoadedMsg struct{ items []domain.RecycleItem }
type itemsFailedMsg struct{ err error }
type documentLoadedMsg struct {
	name    string
	content string
}
type documentFailedMsg struct {
	name string
	err  error
}
type restoreDoneMsg struct {
	name    string
	message string
}
type restoreFailedMsg struct {
	name string
	err  error
}

// ItemsController owns the recycle item list, the view-document dialog and
// the restore dialog. Results of its commands come back through Update, in
// whatever order they resolve; the last one to arrive wins.
type ItemsController struct {
	gateway      domain.RecycleGateway
	log          logrus.FieldLogger
	prodPatterns []string

	list     ViewState[domain.RecycleItem]
	document DialogState
	doc      documentState
	restore  DialogState
	confirm  confirmState

	cursor int
	sort   SortState
	filter string
}

func NewItemsController(gateway domain.RecycleGateway, log logrus.FieldLogger, prodPatterns []string) *ItemsController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ItemsController{
		gateway:      gateway,
		log:          log.WithField("controller", "items"),
		prodPatterns: prodPatterns,
		confirm:      newConfirmState(),
	}
}

func (c *ItemsController) SetGateway(gateway domain.RecycleGateway) {
	c.gateway = gateway
}

// List returns the list view state.
func (c *ItemsController) List() ViewState[domain.RecycleItem] { return c.list }

// DocumentDialog returns the view-document dialog state.
func (c *ItemsController) DocumentDialog() DialogState { return c.document }

// RestoreDialog returns the restore dialog state.
func (c *ItemsController) RestoreDialog() DialogState { return c.restore }

// Refresh reloads the list. Concurrent refreshes are not coalesced.
func (c *ItemsController) Refresh() tea.Cmd {
	c.list.Start()
	gw := c.gateway
	return func() tea.Msg {
		items, err := gw.ListItems(context.Background())
		if err != nil {
			return itemsFailedMsg{err: err}
		}
		return itemsLoadedMsg{items: items}
	}
}

// OpenDocument opens the dialog right away and loads its content.
func (c *ItemsController) OpenDocument(name string) tea.Cmd {
	c.document.Open(name)
	c.doc.startLoading()
	gw := c.gateway
	return func() tea.Msg {
		content, err := gw.GetItemDocument(context.Background(), name)
		if err != nil {
			return documentFailedMsg{name: name, err: err}
		}
		return documentLoadedMsg{name: name, content: content}
	}
}

func (c *ItemsController) CloseDocument() {
	c.document.Cancel()
	c.doc = documentState{}
}

// OpenRestore opens the restore dialog for name. Items from production
// namespaces must be confirmed by typing their name.
func (c *ItemsController) OpenRestore(name string) {
	ns := ""
	if item, ok := c.find(name); ok {
		ns = item.ObjectNamespace
	}
	c.restore.Open(name)
	c.confirm.activate("Restore", name, ns, ns != "" && config.IsProdNamespace(ns, c.prodPatterns))
}

func (c *ItemsController) CancelRestore() {
	c.restore.Cancel()
	c.confirm.reset()
}

// ConfirmRestore submits the restore. It does nothing unless the dialog is
// open for name.
func (c *ItemsController) ConfirmRestore(name string) tea.Cmd {
	if !c.restore.Submit(name) {
		return nil
	}
	gw := c.gateway
	return func() tea.Msg {
		message, err := gw.RestoreItem(context.Background(), name)
		if err != nil {
			return restoreFailedMsg{name: name, err: err}
		}
		return restoreDoneMsg{name: name, message: message}
	}
}

// Update applies a command result. It reports false for messages it does
// not own.
func (c *ItemsController) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		c.list.Succeed(msg.items)
		c.clampCursor()
		return nil, true

	case itemsFailedMsg:
		c.log.WithError(msg.err).Error("loading recycle items failed")
		c.list.Fail(domain.ErrorMessage(msg.err))
		c.cursor = 0
		return nil, true

	case documentLoadedMsg:
		c.doc.setContent(msg.content)
		return nil, true

	case documentFailedMsg:
		c.log.WithError(msg.err).WithField("item", msg.name).Error("loading document failed")
		c.doc.setError(domain.ErrorMessage(msg.err))
		return nil, true

	case restoreDoneMsg:
		if c.restore.awaiting(msg.name) {
			c.restore.Succeed()
			c.confirm.reset()
		}
		message := msg.message
		if message == "" {
			message = "restored " + msg.name
		}
		return tea.Batch(notifySuccess(message), c.Refresh()), true

	case restoreFailedMsg:
		c.log.WithError(msg.err).WithField("item", msg.name).Error("restore failed")
		if c.restore.awaiting(msg.name) {
			c.restore.Fail()
		}
		return notifyError("restore", msg.err), true
	}
	return nil, false
}

// Visible returns the loaded items after filter and sort.
func (c *ItemsController) Visible() []domain.RecycleItem {
	f := strings.ToLower(c.filter)
	var result []domain.RecycleItem
	if f == "" {
		result = c.list.Items
	} else {
		for _, it := range c.list.Items {
			if strings.Contains(strings.ToLower(it.Name), f) ||
				strings.Contains(strings.ToLower(it.ObjectKind), f) ||
				strings.Contains(strings.ToLower(it.ObjectNamespace), f) {
				result = append(result, it)
			}
		}
	}
	return SortItems(result, c.sort)
}

// Selected returns the item under the cursor.
func (c *ItemsController) Selected() (domain.RecycleItem, bool) {
	items := c.Visible()
	if c.cursor < 0 || c.cursor >= len(items) {
		return domain.RecycleItem{}, false
	}
	return items[c.cursor], true
}

func (c *ItemsController) find(name string) (domain.RecycleItem, bool) {
	for _, it := range c.list.Items {
		if it.Name == name {
			return it, true
		}
	}
	return domain.RecycleItem{}, false
}

func (c *ItemsController) SetFilter(f string) {
	c.filter = f
	c.cursor = 0
}

func (c *ItemsController) CycleSort() {
	c.sort = nextSort(c.sort, NextItemSort)
	c.cursor = 0
}

func (c *ItemsController) moveCursor(delta int) {
	c.cursor += delta
	c.clampCursor()
}

func (c *ItemsController) cursorToEnd() {
	c.cursor = len(c.Visible()) - 1
	c.clampCursor()
}

func (c *ItemsController) clampCursor() {
	n := len(c.Visible())
	if c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}
