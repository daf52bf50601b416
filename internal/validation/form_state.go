package validation

import "sync"

// FormState is the lifecycle position of a form being filled in.
type FormState string

const (
	FormStateEmpty      FormState = "empty"
	FormStateValidating FormState = "validating"
	FormStateValid      FormState = "valid"
	FormStateInvalid    FormState = "invalid"
)

// FormResult is a snapshot of a form after a change.
type FormResult struct {
	Schema    SchemaName        `json:"schema"`
	State     FormState         `json:"state"`
	Errors    map[string]string `json:"errors,omitempty"`
	CanSubmit bool              `json:"canSubmit"`
}

// Form tracks a single form through empty, validating and valid or invalid.
// Neither outcome is sticky: every change re-enters validating.
type Form struct {
	validator *Validator
	schema    SchemaName

	mu      sync.Mutex
	state   FormState
	errors  map[string]string
	value   interface{}
	observe func(from, to FormState)
}

// NewForm starts an empty form for schema.
func (v *Validator) NewForm(schema SchemaName) *Form {
	return &Form{validator: v, schema: schema, state: FormStateEmpty}
}

// OnTransition registers fn to be called on every state change.
func (f *Form) OnTransition(fn func(from, to FormState)) {
	f.mu.Lock()
	f.observe = fn
	f.mu.Unlock()
}

// Change applies new field values and re-validates.
func (f *Form) Change(values Values) (FormResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if values.Empty() {
		f.transition(FormStateEmpty)
		f.errors, f.value = nil, nil
		return f.resultLocked(), nil
	}

	f.transition(FormStateValidating)
	form, fields, err := f.validator.Check(f.schema, values)
	if err != nil {
		f.transition(FormStateInvalid)
		return f.resultLocked(), err
	}
	if len(fields) > 0 {
		f.errors, f.value = fields, nil
		f.transition(FormStateInvalid)
	} else {
		f.errors, f.value = nil, form
		f.transition(FormStateValid)
	}
	return f.resultLocked(), nil
}

// State returns the current state.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit reports whether the form may be submitted.
func (f *Form) CanSubmit() bool {
	return f.State() == FormStateValid
}

// Value returns the decoded form when valid.
func (f *Form) Value() interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *Form) transition(to FormState) {
	from := f.state
	f.state = to
	if f.observe != nil && from != to {
		f.observe(from, to)
	}
}

func (f *Form) resultLocked() FormResult {
	return FormResult{
		Schema:    f.schema,
		State:     f.state,
		Errors:    f.errors,
		CanSubmit: f.state == FormStateValid,
	}
}
