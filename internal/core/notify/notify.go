package notify

import (
	"strconv"
	"sync"
)

// Variant は通知の表示種別です。
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// DefaultLimit は同時に保持する通知数の既定値です。
const DefaultLimit = 1

const idModulo = 100000

// Toast は 1 件の通知です。
type Toast struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	Open        bool
}

// State は通知センターの状態です。新しい通知が先頭に並びます。
type State struct {
	Toasts []Toast
}

// ActionType は状態遷移の種類です。
type ActionType string

const (
	ActionAdd     ActionType = "ADD_TOAST"
	ActionUpdate  ActionType = "UPDATE_TOAST"
	ActionDismiss ActionType = "DISMISS_TOAST"
	ActionRemove  ActionType = "REMOVE_TOAST"
)

// Action は Reduce に渡す状態遷移です。
// Dismiss と Remove は ToastID が空の場合すべての通知を対象にします。
type Action struct {
	Type    ActionType
	Toast   Toast
	ToastID string
}

// Reduce は副作用のない状態遷移関数です。limit 件を超えた古い通知は破棄されます。
func Reduce(state State, action Action, limit int) State {
	if limit <= 0 {
		limit = DefaultLimit
	}

	switch action.Type {
	case ActionAdd:
		toasts := make([]Toast, 0, len(state.Toasts)+1)
		toasts = append(toasts, action.Toast)
		toasts = append(toasts, state.Toasts...)
		if len(toasts) > limit {
			toasts = toasts[:limit]
		}
		return State{Toasts: toasts}

	case ActionUpdate:
		toasts := make([]Toast, len(state.Toasts))
		for i, t := range state.Toasts {
			if t.ID == action.Toast.ID {
				t = mergeToast(t, action.Toast)
			}
			toasts[i] = t
		}
		return State{Toasts: toasts}

	case ActionDismiss:
		toasts := make([]Toast, len(state.Toasts))
		for i, t := range state.Toasts {
			if action.ToastID == "" || t.ID == action.ToastID {
				t.Open = false
			}
			toasts[i] = t
		}
		return State{Toasts: toasts}

	case ActionRemove:
		if action.ToastID == "" {
			return State{}
		}
		toasts := make([]Toast, 0, len(state.Toasts))
		for _, t := range state.Toasts {
			if t.ID != action.ToastID {
				toasts = append(toasts, t)
			}
		}
		return State{Toasts: toasts}
	}

	return state
}

func mergeToast(base, update Toast) Toast {
	if update.Title != "" {
		base.Title = update.Title
	}
	if update.Description != "" {
		base.Description = update.Description
	}
	if update.Variant != "" {
		base.Variant = update.Variant
	}
	return base
}

// Listener は状態が変わるたびに呼び出されます。
type Listener func(State)

// Center はプロセス全体で共有する通知の発行・購読チャネルです。
type Center struct {
	limit int

	mu        sync.Mutex
	state     State
	count     int
	listeners map[int]Listener
	nextSub   int
}

// NewCenter は Center を生成します。limit が 0 以下の場合は DefaultLimit を使います。
func NewCenter(limit int) *Center {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Center{limit: limit, listeners: make(map[int]Listener)}
}

var (
	defaultOnce   sync.Once
	defaultCenter *Center
)

// Default はプロセス共有の Center を返します。
func Default() *Center {
	defaultOnce.Do(func() {
		defaultCenter = NewCenter(DefaultLimit)
	})
	return defaultCenter
}

// Handle は発行済み通知を操作するためのハンドルです。
type Handle struct {
	ID     string
	center *Center
}

// Dismiss は通知を閉じます。
func (h Handle) Dismiss() {
	h.center.Dismiss(h.ID)
}

// Update は通知の内容を更新します。
func (h Handle) Update(t Toast) {
	t.ID = h.ID
	h.center.dispatch(Action{Type: ActionUpdate, Toast: t})
}

// Toast は通知を発行し、ハンドルを返します。
func (c *Center) Toast(t Toast) Handle {
	c.mu.Lock()
	c.count = (c.count + 1) % idModulo
	id := strconv.Itoa(c.count)
	c.mu.Unlock()

	t.ID = id
	t.Open = true
	if t.Variant == "" {
		t.Variant = VariantDefault
	}
	c.dispatch(Action{Type: ActionAdd, Toast: t})
	return Handle{ID: id, center: c}
}

// Dismiss は通知を閉じます。id が空の場合はすべて閉じます。
func (c *Center) Dismiss(id string) {
	c.dispatch(Action{Type: ActionDismiss, ToastID: id})
}

// Remove は通知を削除します。id が空の場合はすべて削除します。
func (c *Center) Remove(id string) {
	c.dispatch(Action{Type: ActionRemove, ToastID: id})
}

// State は現在の状態のコピーを返します。
func (c *Center) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyState(c.state)
}

// Subscribe はリスナーを登録し、解除関数を返します。
func (c *Center) Subscribe(l Listener) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Center) dispatch(a Action) {
	c.mu.Lock()
	c.state = Reduce(c.state, a, c.limit)
	snapshot := copyState(c.state)
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func copyState(s State) State {
	if s.Toasts == nil {
		return State{}
	}
	toasts := make([]Toast, len(s.Toasts))
	copy(toasts, s.Toasts)
	return State{Toasts: toasts}
}
