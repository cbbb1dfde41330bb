package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
)

type policiesLoadedMsg struct{ items []domain.RecyclePolicy }
type policiesFailedMsg struct{ err error }
type policyCreatedMsg struct {
	attempt string
	name    string
	message string
}
type policyCreateFailedMsg struct {
	attempt string
	name    string
	err     error
}
type policyDeletedMsg struct {
	name    string
	message string
}
type policyDeleteFailedMsg struct {
	name string
	err  error
}

// PoliciesController owns the recycle policy list, the create dialog and the
// delete dialog.
type PoliciesController struct {
	gateway      domain.RecycleGateway
	log          logrus.FieldLogger
	prodPatterns []string

	list    ViewState[domain.RecyclePolicy]
	create  DialogState
	form    policyFormState
	// opened counts create dialogs; each one is its own dialog target.
	opened  int
	delete  DialogState
	confirm confirmState

	cursor int
	sort   SortState
	filter string
}

func NewPoliciesController(gateway domain.RecycleGateway, log logrus.FieldLogger, prodPatterns []string) *PoliciesController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PoliciesController{
		gateway:      gateway,
		log:          log.WithField("controller", "policies"),
		prodPatterns: prodPatterns,
		form:         newPolicyFormState(),
		confirm:      newConfirmState(),
	}
}

func (c *PoliciesController) SetGateway(gateway domain.RecycleGateway) {
	c.gateway = gateway
}

// List returns the list view state.
func (c *PoliciesController) List() ViewState[domain.RecyclePolicy] { return c.list }

// CreateDialog returns the create dialog state.
func (c *PoliciesController) CreateDialog() DialogState { return c.create }

// DeleteDialog returns the delete dialog state.
func (c *PoliciesController) DeleteDialog() DialogState { return c.delete }

// Form returns the current create form input.
func (c *PoliciesController) Form() PolicyForm { return c.form.values() }

// Refresh reloads the list. Concurrent refreshes are not coalesced.
func (c *PoliciesController) Refresh() tea.Cmd {
	c.list.Start()
	gw := c.gateway
	return func() tea.Msg {
		policies, err := gw.ListPolicies(context.Background())
		if err != nil {
			return policiesFailedMsg{err: err}
		}
		return policiesLoadedMsg{items: policies}
	}
}

func (c *PoliciesController) OpenCreate() {
	c.opened++
	c.create.Open(strconv.Itoa(c.opened))
	c.form.setFocus(fieldName)
}

// CancelCreate closes the dialog and discards the draft.
func (c *PoliciesController) CancelCreate() {
	c.create.Cancel()
	c.form.clear()
	c.form.blur()
}

// SubmitCreate validates form and creates the policy. A form without name
// or resource is refused before any request is made.
func (c *PoliciesController) SubmitCreate(form PolicyForm) tea.Cmd {
	if !form.CanSubmit() {
		return nil
	}
	attempt := c.create.Target
	if !c.create.Submit(attempt) {
		return nil
	}
	spec := form.Spec()
	gw := c.gateway
	return func() tea.Msg {
		message, err := gw.CreatePolicy(context.Background(), spec)
		if err != nil {
			return policyCreateFailedMsg{attempt: attempt, name: spec.Name, err: err}
		}
		return policyCreatedMsg{attempt: attempt, name: spec.Name, message: message}
	}
}

// OpenDelete opens the delete dialog for name. Policies scoped to a
// production namespace must be confirmed by typing their name.
func (c *PoliciesController) OpenDelete(name string) {
	var namespaces []string
	if p, ok := c.find(name); ok {
		namespaces = p.Namespaces
	}
	c.delete.Open(name)
	c.confirm.activate("Delete policy", name, strings.Join(namespaces, ", "),
		config.AnyProdNamespace(namespaces, c.prodPatterns))
}

func (c *PoliciesController) CancelDelete() {
	c.delete.Cancel()
	c.confirm.reset()
}

// ConfirmDelete submits the delete. It does nothing unless the dialog is
// open for name.
func (c *PoliciesController) ConfirmDelete(name string) tea.Cmd {
	if !c.delete.Submit(name) {
		return nil
	}
	gw := c.gateway
	return func() tea.Msg {
		message, err := gw.DeletePolicy(context.Background(), name)
		if err != nil {
			return policyDeleteFailedMsg{name: name, err: err}
		}
		return policyDeletedMsg{name: name, message: message}
	}
}

// Update applies a command result. It reports false for messages it does
// not own.
func (c *PoliciesController) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case policiesLoadedMsg:
		c.list.Succeed(msg.items)
		c.clampCursor()
		return nil, true

	case policiesFailedMsg:
		c.log.WithError(msg.err).Error("loading recycle policies failed")
		c.list.Fail(domain.ErrorMessage(msg.err))
		c.cursor = 0
		return nil, true

	case policyCreatedMsg:
		if c.create.awaiting(msg.attempt) {
			c.create.Succeed()
			c.form.clear()
			c.form.blur()
		}
		message := msg.message
		if message == "" {
			message = "created policy " + msg.name
		}
		return tea.Batch(notifySuccess(message), c.Refresh()), true

	case policyCreateFailedMsg:
		c.log.WithError(msg.err).WithField("policy", msg.name).Error("create policy failed")
		if c.create.awaiting(msg.attempt) {
			c.create.Fail()
		}
		return notifyError("create policy", msg.err), true

	case policyDeletedMsg:
		if c.delete.awaiting(msg.name) {
			c.delete.Succeed()
			c.confirm.reset()
		}
		message := msg.message
		if message == "" {
			message = "deleted policy " + msg.name
		}
		return tea.Batch(notifySuccess(message), c.Refresh()), true

	case policyDeleteFailedMsg:
		c.log.WithError(msg.err).WithField("policy", msg.name).Error("delete policy failed")
		if c.delete.awaiting(msg.name) {
			c.delete.Fail()
		}
		return notifyError("delete policy", msg.err), true
	}
	return nil, false
}

// Visible returns the loaded policies after filter and sort.
func (c *PoliciesController) Visible() []domain.RecyclePolicy {
	f := strings.ToLower(c.filter)
	var result []domain.RecyclePolicy
	if f == "" {
		result = c.list.Items
	} else {
		for _, p := range c.list.Items {
			if strings.Contains(strings.ToLower(p.Name), f) ||
				strings.Contains(strings.ToLower(p.GroupResource().String()), f) {
				result = append(result, p)
			}
		}
	}
	return SortPolicies(result, c.sort)
}

// Selected returns the policy under the cursor.
func (c *PoliciesController) Selected() (domain.RecyclePolicy, bool) {
	policies := c.Visible()
	if c.cursor < 0 || c.cursor >= len(policies) {
		return domain.RecyclePolicy{}, false
	}
	return policies[c.cursor], true
}

func (c *PoliciesController) find(name string) (domain.RecyclePolicy, bool) {
	for _, p := range c.list.Items {
		if p.Name == name {
			return p, true
		}
	}
	return domain.RecyclePolicy{}, false
}

func (c *PoliciesController) SetFilter(f string) {
	c.filter = f
	c.cursor = 0
}

func (c *PoliciesController) CycleSort() {
	c.sort = nextSort(c.sort, NextPolicySort)
	c.cursor = 0
}

func (c *PoliciesController) moveCursor(delta int) {
	c.cursor += delta
	c.clampCursor()
}

func (c *PoliciesController) cursorToEnd() {
	c.cursor = len(c.Visible()) - 1
	c.clampCursor()
}

func (c *PoliciesController) clampCursor() {
	n := len(c.Visible())
	if c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}
