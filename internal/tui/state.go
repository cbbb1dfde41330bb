package tui

// LoadPhase is the phase of a list view.
type LoadPhase int

const (
	PhaseIdle LoadPhase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p LoadPhase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ViewState holds exactly one of Idle, Loading, Loaded(items) or Failed(message).
type ViewState[T any] struct {
	Phase LoadPhase
	Items []T
	Err   string
}

func (s *ViewState[T]) Start() {
	*s = ViewState[T]{Phase: PhaseLoading}
}

func (s *ViewState[T]) Succeed(items []T) {
	if items == nil {
		items = []T{}
	}
	*s = ViewState[T]{Phase: PhaseLoaded, Items: items}
}

func (s *ViewState[T]) Fail(message string) {
	*s = ViewState[T]{Phase: PhaseFailed, Err: message}
}

// DialogPhase is the phase of a confirm or form dialog.
type DialogPhase int

const (
	DialogClosed DialogPhase = iota
	DialogOpen
	DialogSubmitting
)

func (p DialogPhase) String() string {
	switch p {
	case DialogOpen:
		return "open"
	case DialogSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// DialogState tracks one dialog and the entity it acts on.
//
//	Closed --Open(t)--> Open --Submit(t)--> Submitting --Succeed--> Closed
//	Submitting --Fail--> Open (same target)
//	any --Cancel--> Closed
type DialogState struct {
	Phase  DialogPhase
	Target string
}

func (d *DialogState) Open(target string) {
	d.Phase = DialogOpen
	d.Target = target
}

func (d *DialogState) Cancel() {
	*d = DialogState{}
}

// Submit moves Open to Submitting. It refuses any other phase and a target
// other than the one the dialog was opened for.
func (d *DialogState) Submit(target string) bool {
	if !d.IsOpen() || d.Target != target {
		return false
	}
	d.Phase = DialogSubmitting
	return true
}

func (d *DialogState) Succeed() {
	*d = DialogState{}
}

// Fail re-arms a submitting dialog. A dialog cancelled mid-flight stays closed.
func (d *DialogState) Fail() {
	if d.Phase == DialogSubmitting {
		d.Phase = DialogOpen
	}
}

// awaiting reports whether the dialog is submitting for target. A result for
// a dialog that was cancelled, or reopened for something else, leaves it alone.
func (d DialogState) awaiting(target string) bool {
	return d.Phase == DialogSubmitting && d.Target == target
}

func (d DialogState) IsOpen() bool       { return d.Phase == DialogOpen }
func (d DialogState) IsSubmitting() bool { return d.Phase == DialogSubmitting }
func (d DialogState) IsActive() bool     { return d.Phase != DialogClosed }
