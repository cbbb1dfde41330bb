package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcrum/krb-tui/internal/domain"
)

// PolicyForm is the raw input of the create-policy dialog.
type PolicyForm struct {
	Name       string
	Group      string
	Resource   string
	Namespaces string // comma or newline separated
}

// CanSubmit reports whether both required fields are filled in.
func (f PolicyForm) CanSubmit() bool {
	return strings.TrimSpace(f.Name) != "" && strings.TrimSpace(f.Resource) != ""
}

// Spec trims every field and normalizes the namespace list.
func (f PolicyForm) Spec() domain.PolicySpec {
	return domain.PolicySpec{
		Name:       strings.TrimSpace(f.Name),
		Group:      strings.TrimSpace(f.Group),
		Resource:   strings.TrimSpace(f.Resource),
		Namespaces: domain.ParseNamespaces(f.Namespaces),
	}
}

const (
	fieldName = iota
	fieldGroup
	fieldResource
	fieldNamespaces
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldName:       "Name *",
	fieldGroup:      "API group",
	fieldResource:   "Resource *",
	fieldNamespaces: "Namespaces",
}

// policyFormState holds the text inputs behind PolicyForm.
type policyFormState struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newPolicyFormState() policyFormState {
	var fs policyFormState
	fs.inputs[fieldName] = newInput("my-policy", 253)
	fs.inputs[fieldGroup] = newInput("apps (empty for core)", 253)
	fs.inputs[fieldResource] = newInput("deployments", 253)
	fs.inputs[fieldNamespaces] = newInput("default, staging (empty for all)", 1024)
	return fs
}

func (fs *policyFormState) values() PolicyForm {
	return PolicyForm{
		Name:       fs.inputs[fieldName].Value(),
		Group:      fs.inputs[fieldGroup].Value(),
		Resource:   fs.inputs[fieldResource].Value(),
		Namespaces: fs.inputs[fieldNamespaces].Value(),
	}
}

func (fs *policyFormState) clear() {
	for i := range fs.inputs {
		fs.inputs[i].SetValue("")
	}
	fs.setFocus(fieldName)
}

func (fs *policyFormState) setFocus(i int) {
	fs.focus = (i + fieldCount) % fieldCount
	for j := range fs.inputs {
		if j == fs.focus {
			fs.inputs[j].Focus()
		} else {
			fs.inputs[j].Blur()
		}
	}
}

func (fs *policyFormState) blur() {
	for j := range fs.inputs {
		fs.inputs[j].Blur()
	}
}

func (fs *policyFormState) next() { fs.setFocus(fs.focus + 1) }
func (fs *policyFormState) prev() { fs.setFocus(fs.focus - 1) }

func (fs *policyFormState) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	fs.inputs[fs.focus], cmd = fs.inputs[fs.focus].Update(msg)
	return cmd
}

func (fs *policyFormState) view(s styles, width int, busy bool) string {
	var b strings.Builder
	b.WriteString(s.dialogTitle.Render("Create Recycle Policy"))
	b.WriteString("\n\n")
	for i := range fs.inputs {
		label := fieldLabels[i]
		if i == fs.focus {
			label = s.focused.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteString("\n    ")
		b.WriteString(fs.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case busy:
		b.WriteString(s.muted.Render("Creating...  [esc] close"))
	case fs.values().CanSubmit():
		b.WriteString("[enter] Create  [tab] Next field  [esc] Cancel")
	default:
		b.WriteString(s.muted.Render("[enter] Create") + "  [tab] Next field  [esc] Cancel")
		b.WriteString("\n")
		b.WriteString(s.muted.Render("Name and resource are required."))
	}
	return s.dialog.Width(min(width-4, 72)).Render(b.String())
}
