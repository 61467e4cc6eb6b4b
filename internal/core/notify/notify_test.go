package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
)

func TestReduce_AddRespectsLimit(t *testing.T) {
	t.Parallel()

	s := State{}
	s = Reduce(s, Action{Type: ActionAdd, Toast: Toast{ID: "1"}}, 2)
	s = Reduce(s, Action{Type: ActionAdd, Toast: Toast{ID: "2"}}, 2)
	s = Reduce(s, Action{Type: ActionAdd, Toast: Toast{ID: "3"}}, 2)

	if len(s.Toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(s.Toasts))
	}
	if s.Toasts[0].ID != "3" || s.Toasts[1].ID != "2" {
		t.Fatalf("expected newest first, got %+v", s.Toasts)
	}
}

func TestReduce_UpdateDismissRemove(t *testing.T) {
	t.Parallel()

	s := State{Toasts: []Toast{{ID: "2", Title: "b", Open: true}, {ID: "1", Title: "a", Open: true}}}

	s = Reduce(s, Action{Type: ActionUpdate, Toast: Toast{ID: "1", Description: "updated"}}, 5)
	if s.Toasts[1].Description != "updated" || s.Toasts[1].Title != "a" {
		t.Fatalf("update not merged: %+v", s.Toasts[1])
	}

	s = Reduce(s, Action{Type: ActionDismiss, ToastID: "2"}, 5)
	if s.Toasts[0].Open || !s.Toasts[1].Open {
		t.Fatalf("expected only toast 2 dismissed: %+v", s.Toasts)
	}

	s = Reduce(s, Action{Type: ActionDismiss}, 5)
	if s.Toasts[1].Open {
		t.Fatalf("expected all toasts dismissed")
	}

	s = Reduce(s, Action{Type: ActionRemove, ToastID: "2"}, 5)
	if len(s.Toasts) != 1 || s.Toasts[0].ID != "1" {
		t.Fatalf("expected toast 2 removed: %+v", s.Toasts)
	}

	s = Reduce(s, Action{Type: ActionRemove}, 5)
	if len(s.Toasts) != 0 {
		t.Fatalf("expected all toasts removed")
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := State{Toasts: []Toast{{ID: "1", Open: true}}}
	_ = Reduce(in, Action{Type: ActionDismiss}, 1)
	if !in.Toasts[0].Open {
		t.Fatalf("input state was mutated")
	}
}

func TestCenter_ToastNotifiesListeners(t *testing.T) {
	t.Parallel()

	c := NewCenter(0)

	var states []State
	unsubscribe := c.Subscribe(func(s State) { states = append(states, s) })

	first := c.Toast(Toast{Title: "first"})
	second := c.Toast(Toast{Title: "second"})

	if first.ID != "1" || second.ID != "2" {
		t.Fatalf("unexpected ids %s %s", first.ID, second.ID)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(states))
	}

	current := c.State()
	if len(current.Toasts) != 1 || current.Toasts[0].Title != "second" || !current.Toasts[0].Open {
		t.Fatalf("expected only the newest toast with default limit: %+v", current)
	}
	if current.Toasts[0].Variant != VariantDefault {
		t.Fatalf("expected default variant")
	}

	second.Dismiss()
	if c.State().Toasts[0].Open {
		t.Fatalf("expected toast to be dismissed")
	}

	unsubscribe()
	c.Remove("")
	if len(states) != 3 {
		t.Fatalf("unsubscribed listener must not be notified, got %d", len(states))
	}
}

func TestCenter_IDWrapsAround(t *testing.T) {
	t.Parallel()

	c := NewCenter(1)
	c.count = idModulo - 1

	h := c.Toast(Toast{Title: "wrap"})
	if h.ID != "0" {
		t.Fatalf("expected id to wrap to 0, got %s", h.ID)
	}
}

func TestDefault_IsShared(t *testing.T) {
	t.Parallel()

	if Default() != Default() {
		t.Fatalf("expected a single process-wide center")
	}
}

func TestWorkerSink_Messages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ev      worker.Event
		title   string
		desc    string
		variant Variant
	}{
		{worker.Event{Kind: worker.EventCreated, Name: "Priya"}, "Success!", "Priya has been added.", VariantDefault},
		{worker.Event{Kind: worker.EventUpdated, Name: "Priya"}, "Success!", "Priya has been updated.", VariantDefault},
		{worker.Event{Kind: worker.EventDeleted, Name: "Priya"}, "Worker Deleted", "Priya has been removed from the dashboard.", VariantDefault},
		{worker.Event{Kind: worker.EventWriteFailed, Op: worker.EventDeleted, WorkerID: "w1", Err: errors.New("timeout")}, "Delete Failed", "Worker w1 could not be written: timeout", VariantDestructive},
	}

	for _, tc := range cases {
		c := NewCenter(1)
		NewWorkerSink(c).WorkerChanged(context.Background(), tc.ev)

		got := c.State().Toasts[0]
		if got.Title != tc.title || got.Description != tc.desc || got.Variant != tc.variant {
			t.Errorf("unexpected toast for %+v: %+v", tc.ev, got)
		}
	}
}
