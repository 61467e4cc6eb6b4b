package worker

import "context"

// EventKind は書き込み結果の種類です。
type EventKind string

const (
	EventCreated     EventKind = "created"
	EventUpdated     EventKind = "updated"
	EventDeleted     EventKind = "deleted"
	EventWriteFailed EventKind = "write_failed"
)

// Event は非同期書き込みの完了通知です。
type Event struct {
	Kind     EventKind
	Op       EventKind
	WorkerID string
	Name     string
	Err      error
}

// EventSink は書き込み完了を受け取るコンポーネントです。
// 通知センター、ライブビュー、変更フィードがこれを実装します。
type EventSink interface {
	WorkerChanged(ctx context.Context, ev Event)
}

// EventSinkFunc は関数を EventSink として扱うためのアダプターです。
type EventSinkFunc func(ctx context.Context, ev Event)

// WorkerChanged は f(ctx, ev) を呼び出します。
func (f EventSinkFunc) WorkerChanged(ctx context.Context, ev Event) {
	f(ctx, ev)
}
