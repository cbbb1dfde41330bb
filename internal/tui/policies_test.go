package tui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcrum/krb-tui/internal/domain"
	"github.com/wcrum/krb-tui/internal/logging"
)

func newPoliciesController(mock *domain.MockGateway) *PoliciesController {
	c := NewPoliciesController(mock, logging.Discard(), []string{"prod"})
	runController(c.Update, c.Refresh())
	return c
}

func TestPoliciesController_Refresh(t *testing.T) {
	mock := newTestGateway()
	c := newPoliciesController(mock)
	if c.List().Phase != PhaseLoaded || len(c.List().Items) != 3 || mock.ListPoliciesCalls != 1 {
		t.Errorf("list = %+v, calls = %d", c.List(), mock.ListPoliciesCalls)
	}

	mock.ListPoliciesErr = &domain.APIError{Type: domain.ErrServer, Status: 500, Message: "Internal Server Error"}
	runController(c.Update, c.Refresh())
	if c.List().Phase != PhaseFailed || c.List().Err != "Internal Server Error" {
		t.Errorf("list = %+v", c.List())
	}
}

func TestPoliciesController_SubmitCreateRefusesIncompleteForm(t *testing.T) {
	mock := newTestGateway()
	c := newPoliciesController(mock)
	c.OpenCreate()

	form := PolicyForm{Name: "p1", Resource: "  "}
	if form.CanSubmit() {
		t.Fatal("blank resource must not be submittable")
	}
	if cmd := c.SubmitCreate(form); cmd != nil {
		t.Error("incomplete form should produce no request")
	}
	if mock.CreateCalls != 0 {
		t.Errorf("CreateCalls = %d, want 0", mock.CreateCalls)
	}
	if !c.CreateDialog().IsOpen() {
		t.Error("dialog should stay open")
	}
}

func TestPoliciesController_SubmitCreateRequiresOpenDialog(t *testing.T) {
	mock := newTestGateway()
	c := newPoliciesController(mock)
	if cmd := c.SubmitCreate(PolicyForm{Name: "p1", Resource: "secrets"}); cmd != nil {
		t.Error("closed dialog should not submit")
	}
}

func TestPoliciesController_CreateSuccess(t *testing.T) {
	mock := newTestGateway()
	c := newPoliciesController(mock)
	listCalls := mock.ListPoliciesCalls

	c.OpenCreate()
	for _, r := range "p1" {
		c.form.update(runes(string(r)))
	}
	notes := runController(c.Update, c.SubmitCreate(PolicyForm{
		Name:       "p1",
		Group:      "apps",
		Resource:   "deployments",
		Namespaces: "default, ,prod",
	}))

	want := domain.PolicySpec{Name: "p1", Group: "apps", Resource: "deployments", Namespaces: []string{"default", "prod"}}
	if mock.CreatedSpec == nil || !reflect.DeepEqual(*mock.CreatedSpec, want) {
		t.Errorf("created %+v, want %+v", mock.CreatedSpec, want)
	}
	if c.CreateDialog().IsActive() {
		t.Error("dialog should close on success")
	}
	if c.Form() != (PolicyForm{}) {
		t.Errorf("form should be cleared, got %+v", c.Form())
	}
	if got := mock.ListPoliciesCalls - listCalls; got != 1 {
		t.Errorf("refreshes after create = %d, want 1", got)
	}
	if len(notes) != 1 || notes[0].message != "Success: "+mock.CreateMessage {
		t.Errorf("notes = %+v", notes)
	}
}

func TestPoliciesController_CreateFailureKeepsDraft(t *testing.T) {
	mock := newTestGateway()
	mock.CreateErr = &domain.APIError{Type: domain.ErrServer, Status: 409, Message: "policy p1 already exists"}
	c := newPoliciesController(mock)

	c.OpenCreate()
	for _, r := range "p1" {
		c.form.update(runes(string(r)))
	}
	notes := runController(c.Update, c.SubmitCreate(PolicyForm{Name: "p1", Resource: "secrets"}))

	if !c.CreateDialog().IsOpen() {
		t.Errorf("dialog = %+v, want open", c.CreateDialog())
	}
	if c.Form().Name != "p1" {
		t.Errorf("draft lost: %+v", c.Form())
	}
	if len(notes) != 1 || notes[0].message != "Error: failed to create policy: policy p1 already exists" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestPoliciesController_LateCreateResultAfterCancel(t *testing.T) {
	mock := newTestGateway()
	c := newPoliciesController(mock)
	deliver := func(msgs []tea.Msg) {
		for _, msg := range msgs {
			next, _ := c.Update(msg)
			runController(c.Update, next)
		}
	}

	c.OpenCreate()
	first := collect(c.SubmitCreate(PolicyForm{Name: "p1", Resource: "secrets"}))
	c.CancelCreate()

	c.OpenCreate()
	for _, r := range "p2" {
		c.form.update(runes(string(r)))
	}
	mock.CreateErr = &domain.APIError{Type: domain.ErrServer, Status: 409, Message: "policy p2 already exists"}
	second := collect(c.SubmitCreate(PolicyForm{Name: "p2", Resource: "secrets"}))

	deliver(first)
	if !c.CreateDialog().IsSubmitting() || c.Form().Name != "p2" {
		t.Fatalf("stale success touched the new dialog: dialog %+v form %+v", c.CreateDialog(), c.Form())
	}

	deliver(second)
	if !c.CreateDialog().IsOpen() {
		t.Errorf("dialog = %+v, want open", c.CreateDialog())
	}
	if c.Form().Name != "p2" {
		t.Errorf("draft lost: %+v", c.Form())
	}
}

func TestPoliciesController_CancelCreateClearsDraft(t *testing.T) {
	c := newPoliciesController(newTestGateway())
	c.OpenCreate()
	c.form.update(runes("x"))
	c.CancelCreate()
	if c.CreateDialog().IsActive() || c.Form() != (PolicyForm{}) {
		t.Errorf("dialog %+v form %+v", c.CreateDialog(), c.Form())
	}
}

func TestPoliciesController_DeleteSuccess(t *testing.T) {
	mock := newTestGateway()
	c := newPoliciesController(mock)
	listCalls := mock.ListPoliciesCalls

	c.OpenDelete("deployments")
	notes := runController(c.Update, c.ConfirmDelete("deployments"))

	if mock.DeletedPolicy != "deployments" || mock.DeleteCalls != 1 {
		t.Errorf("deleted %q, calls %d", mock.DeletedPolicy, mock.DeleteCalls)
	}
	if c.DeleteDialog().IsActive() {
		t.Error("dialog should close on success")
	}
	if got := mock.ListPoliciesCalls - listCalls; got != 1 {
		t.Errorf("refreshes after delete = %d, want 1", got)
	}
	if len(notes) != 1 || notes[0].level != toastSuccess {
		t.Errorf("notes = %+v", notes)
	}
}

func TestPoliciesController_DeleteConflictKeepsDialogOpen(t *testing.T) {
	mock := newTestGateway()
	mock.DeleteErr = &domain.APIError{Type: domain.ErrServer, Status: 409, Message: "in use"}
	c := newPoliciesController(mock)

	c.OpenDelete("deployments")
	notes := runController(c.Update, c.ConfirmDelete("deployments"))

	d := c.DeleteDialog()
	if d.Phase != DialogOpen || d.Target != "deployments" {
		t.Errorf("dialog = %+v, want open on deployments", d)
	}
	if len(notes) != 1 || notes[0].level != toastError || !strings.Contains(notes[0].message, "in use") {
		t.Errorf("notes = %+v", notes)
	}
}

func TestPoliciesController_ConfirmDeleteWrongTarget(t *testing.T) {
	mock := newTestGateway()
	c := newPoliciesController(mock)
	c.OpenDelete("deployments")
	if cmd := c.ConfirmDelete("configmaps"); cmd != nil {
		t.Error("confirm for another target should do nothing")
	}
	if mock.DeleteCalls != 0 {
		t.Errorf("DeleteCalls = %d", mock.DeleteCalls)
	}
}

func TestPoliciesController_ProdGuard(t *testing.T) {
	c := newPoliciesController(newTestGateway())

	c.OpenDelete("prod-secrets") // dev, shop-prod
	if !c.confirm.isProd() {
		t.Error("policy touching shop-prod should need typed confirmation")
	}
	c.CancelDelete()

	c.OpenDelete("configmaps") // all namespaces
	if c.confirm.isProd() {
		t.Error("all-namespace policy has no prod namespace to match")
	}
}

func TestPoliciesController_Filter(t *testing.T) {
	c := newPoliciesController(newTestGateway())
	c.SetFilter("apps")
	if got := policyNames(c.Visible()); !reflect.DeepEqual(got, []string{"deployments"}) {
		t.Errorf("group filter = %v", got)
	}
	c.SetFilter("SECRETS")
	if got := policyNames(c.Visible()); !reflect.DeepEqual(got, []string{"prod-secrets"}) {
		t.Errorf("resource filter = %v", got)
	}
}
