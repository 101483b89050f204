package forms

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Status is the single lifecycle value a form is in. Illegal
// combinations (submitting while failed, two submits in flight) are
// unrepresentable.
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

// Form tracks one form's submit lifecycle. The zero value is Idle.
type Form struct {
	mu      sync.Mutex
	status  Status
	message string
}

// Status returns the current lifecycle state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Message returns the settled result message: the failure reason after
// Failed, empty otherwise.
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Begin guards submission: it moves the form into Submitting and reports
// whether it did. A submit already in flight refuses re-entry.
func (f *Form) Begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == Submitting {
		return false
	}
	f.status = Submitting
	f.message = ""
	return true
}

// Finish settles the in-flight submit. A nil error succeeds; otherwise
// the form becomes Failed with the error's message and remains
// resubmittable.
func (f *Form) Finish(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = Failed
		f.message = err.Error()
		return
	}
	f.status = Succeeded
	f.message = ""
}

// Fail settles the form as Failed without a submit having started,
// used for pre-network validation errors.
func (f *Form) Fail(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = Failed
	f.message = message
}

// Reset returns the form to Idle.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = Idle
	f.message = ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginPayload carries the login form's fields.
type LoginPayload struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// ContactPayload carries the contact form's fields. The email check is
// structural only; anything shaped like local@domain.tld passes.
type ContactPayload struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

// WorkPayload carries the create-work form's fields.
type WorkPayload struct {
	Title       string `validate:"required"`
	Description string
	CategoryID  int64 `validate:"gt=0"`
	IsFeatured  bool
}

// PhotoEditPayload carries the edit-photo form's fields.
type PhotoEditPayload struct {
	ID          int64  `validate:"required,gt=0"`
	Title       string `validate:"required"`
	Description string
	CategoryID  int64
	WorkID      int64
	IsFeatured  bool
}

// Validate checks a payload before any network call. The returned error
// message is already user-facing ("email must be a valid address").
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return errors.New(friendlyMessage(fieldErrs[0]))
}

func friendlyMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", displayField(field))
	case "email":
		return "email must be a valid address"
	case "gt":
		return fmt.Sprintf("%s must be selected", displayField(field))
	default:
		return fmt.Sprintf("%s is invalid", displayField(field))
	}
}

func displayField(field string) string {
	switch field {
	case "categoryid":
		return "category"
	case "workid":
		return "work"
	default:
		return field
	}
}
