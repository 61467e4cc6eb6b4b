package worker

import (
	"testing"
	"time"
)

func TestPatchFromWorker_CoversEveryField(t *testing.T) {
	t.Parallel()

	w := validWorker()
	w.ID = "w1"
	p := PatchFromWorker(w)

	if got := len(p.Fields()); got != 18 {
		t.Fatalf("expected 18 fields, got %d", got)
	}
	for _, f := range p.Fields() {
		if f.Name == "id" {
			t.Fatalf("id must not be part of the merge payload")
		}
	}
}

func TestPatch_ApplyLeavesUnsetFields(t *testing.T) {
	t.Parallel()

	w := validWorker()
	w.Checklist.NDASigned = true

	department := "Language"
	vpn := true
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	Patch{Department: &department, VPNAccessGranted: &vpn, UpdatedAt: now}.Apply(w)

	if w.Department != "Language" || !w.Checklist.VPNAccessGranted {
		t.Fatalf("patch fields not applied: %+v", w)
	}
	if w.Name != "Priya Sharma" || !w.Checklist.NDASigned {
		t.Fatalf("unspecified fields changed: %+v", w)
	}
	if !w.UpdatedAt.Equal(now) {
		t.Fatalf("expected UpdatedAt to be set")
	}
}

func TestPatch_Empty(t *testing.T) {
	t.Parallel()

	if !(Patch{}).Empty() {
		t.Fatalf("zero patch must be empty")
	}
	flag := false
	if (Patch{WelcomeKitSent: &flag}).Empty() {
		t.Fatalf("patch with a false flag is not empty")
	}
}
