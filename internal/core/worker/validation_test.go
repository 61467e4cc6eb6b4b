package worker

import (
	"errors"
	"testing"
)

func validWorker() *Worker {
	return &Worker{
		Name:         "Priya Sharma",
		Address:      "12 King Street",
		Location:     "Toronto",
		PhoneNumber:  "4165550100",
		EmailAddress: "priya@example.com",
		JobTitle:     "Annotator",
		Department:   "Vision",
		Manager:      "Alex Chen",
		StartDate:    "2025-11-03",
	}
}

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	if err := Validate(validWorker()); err != nil {
		t.Fatalf("expected valid worker, got %v", err)
	}
}

func TestValidate_EmptyRecordListsEveryField(t *testing.T) {
	t.Parallel()

	err := Validate(NewEmpty())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) != 9 {
		t.Fatalf("expected 9 field errors, got %d: %v", len(verr.Fields), verr)
	}
}

func TestValidate_Email(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"not-an-email", "Priya <priya@example.com>", " priya@example.com"} {
		w := validWorker()
		w.EmailAddress = email

		var verr *ValidationError
		if err := Validate(w); !errors.As(err, &verr) {
			t.Fatalf("%q: expected validation error", email)
		}
		if verr.Fields[0].Field != FieldEmailAddress {
			t.Fatalf("%q: expected email field error, got %+v", email, verr.Fields)
		}
	}
}

func TestValidate_StartDateFormat(t *testing.T) {
	t.Parallel()

	w := validWorker()
	w.StartDate = "11/03/2025"

	var verr *ValidationError
	if err := Validate(w); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for start date")
	}
	if verr.Fields[0].Field != FieldStartDate {
		t.Fatalf("expected start date error, got %+v", verr.Fields)
	}
}

func TestValidatePatch_OnlyPresentFields(t *testing.T) {
	t.Parallel()

	done := true
	if err := ValidatePatch(Patch{NDASigned: &done}); err != nil {
		t.Fatalf("flag-only patch must be valid, got %v", err)
	}

	short := "A"
	if err := ValidatePatch(Patch{Name: &short}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for short name, got %v", err)
	}
}
