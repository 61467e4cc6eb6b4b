package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Snapshot はある時点のコレクション全体とその集計値です。
// 購読者間で共有されるため、受け取った側は変更してはいけません。
type Snapshot struct {
	Workers []*Worker
	Summary Summary
	At      time.Time
	// Seq increases with every refresh; a subscriber never receives a lower Seq after a higher one.
	Seq uint64
}

// Lister はスナップショットの読み込み元です。
type Lister interface {
	List(ctx context.Context) ([]*Worker, error)
}

// Hub はコレクションの変更を購読者へスナップショットとして配信します。
type Hub struct {
	lister Lister
	clock  Clock
	log    *zap.Logger

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	seq    uint64
	latest *Snapshot

	changed chan struct{}
}

// NewHub は Hub を生成します。
func NewHub(lister Lister, clock Clock, log *zap.Logger) *Hub {
	if clock == nil {
		clock = realClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		lister:  lister,
		clock:   clock,
		log:     log,
		subs:    make(map[int]*subscriber),
		changed: make(chan struct{}, 1),
	}
}

// Subscribe は購読者を登録し、解除関数を返します。
// 既にスナップショットがあれば登録直後に 1 度配信します。
func (h *Hub) Subscribe(fn func(Snapshot)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	sub := &subscriber{fn: fn}
	h.subs[id] = sub
	latest := h.latest
	h.mu.Unlock()

	if latest != nil {
		sub.deliver(*latest)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Subscribers は現在の購読者数を返します。
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Latest は最後に配信したスナップショットを返します。
func (h *Hub) Latest() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return Snapshot{}, false
	}
	return *h.latest, true
}

// Notify はコレクションが変更されたことを記録します。ブロックしません。
// 連続した通知は 1 回の再読み込みにまとめられます。
func (h *Hub) Notify() {
	select {
	case h.changed <- struct{}{}:
	default:
	}
}

// WorkerChanged は書き込み成功時に再読み込みを予約します。
func (h *Hub) WorkerChanged(_ context.Context, ev Event) {
	if ev.Kind == EventWriteFailed {
		return
	}
	h.Notify()
}

// Refresh はコレクションを読み込み、すべての購読者へ配信します。
func (h *Hub) Refresh(ctx context.Context) error {
	workers, err := h.lister.List(ctx)
	if err != nil {
		return err
	}

	snap := Snapshot{
		Workers: workers,
		Summary: Summarize(workers),
		At:      h.clock.Now(),
	}

	h.mu.Lock()
	h.seq++
	snap.Seq = h.seq
	h.latest = &snap
	subs := make([]*subscriber, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(snap)
	}
	return nil
}

// subscriber は購読者ごとに配信を直列化し、古いスナップショットを捨てます。
type subscriber struct {
	mu      sync.Mutex
	fn      func(Snapshot)
	lastSeq uint64
}

func (s *subscriber) deliver(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Seq <= s.lastSeq {
		return
	}
	s.lastSeq = snap.Seq
	s.fn(snap)
}

// Run は ctx がキャンセルされるまで変更通知を処理します。
func (h *Hub) Run(ctx context.Context) error {
	if err := h.Refresh(ctx); err != nil && ctx.Err() == nil {
		h.log.Warn("initial worker snapshot failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.changed:
			if err := h.Refresh(ctx); err != nil && ctx.Err() == nil {
				h.log.Warn("worker snapshot refresh failed", zap.Error(err))
			}
		}
	}
}
