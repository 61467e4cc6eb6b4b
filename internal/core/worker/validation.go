package worker

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrValidation は入力チェックに失敗した場合に返却されます。
var ErrValidation = errors.New("worker: validation failed")

const startDateLayout = "2006-01-02"

// FieldError は 1 フィールド分の入力エラーです。
type FieldError struct {
	Field   string
	Message string
}

// ValidationError は入力チェックで見つかったすべての問題を保持します。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type fieldRule func(value string) (message string, ok bool)

func minLength(n int, message string) fieldRule {
	return func(value string) (string, bool) {
		if utf8.RuneCountInString(value) < n {
			return message, false
		}
		return "", true
	}
}

func emailRule(value string) (string, bool) {
	if !validEmail(value) {
		return "A valid email is required.", false
	}
	return "", true
}

func startDateRule(value string) (string, bool) {
	if value == "" {
		return "Start date is required.", false
	}
	if _, err := time.Parse(startDateLayout, value); err != nil {
		return "Start date must be YYYY-MM-DD.", false
	}
	return "", true
}

var fieldRules = map[string]fieldRule{
	FieldName:         minLength(2, "Name must be at least 2 characters."),
	FieldAddress:      minLength(5, "Address is required."),
	FieldLocation:     minLength(2, "Location is required."),
	FieldPhoneNumber:  minLength(10, "A valid phone number is required."),
	FieldEmailAddress: emailRule,
	FieldJobTitle:     minLength(2, "Job title is required."),
	FieldDepartment:   minLength(2, "Department is required."),
	FieldManager:      minLength(2, "Manager's name is required."),
	FieldStartDate:    startDateRule,
}

// Validate は保存前のレコード全体を検証します。問題がなければ nil を返します。
func Validate(w *Worker) error {
	if w == nil {
		return &ValidationError{Fields: []FieldError{{Field: "worker", Message: "record is required."}}}
	}
	return ValidatePatch(PatchFromWorker(w))
}

// ValidatePatch はパッチに含まれるフィールドだけを検証します。
func ValidatePatch(p Patch) error {
	var problems []FieldError
	for _, f := range p.Fields() {
		rule, ok := fieldRules[f.Name]
		if !ok {
			continue
		}
		value, _ := f.Value.(string)
		if msg, ok := rule(value); !ok {
			problems = append(problems, FieldError{Field: f.Name, Message: msg})
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}

func validEmail(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed != raw {
		return false
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return false
	}
	// mail.ParseAddress accepts "Name <a@b>"; only bare addresses are valid here.
	return addr.Address == trimmed
}
