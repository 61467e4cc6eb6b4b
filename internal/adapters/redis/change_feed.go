package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"go.uber.org/zap"
)

// DefaultChannel は変更イベントを流す pub/sub チャネルです。
const DefaultChannel = "remoteWorkers:changes"

// Notifier は変更を受けて再読み込みを行うコンポーネントです。worker.Hub が実装します。
type Notifier interface {
	Notify()
}

// ChangeMessage はチャネルに流すメッセージです。
type ChangeMessage struct {
	Origin   string    `json:"origin"`
	Kind     string    `json:"kind"`
	WorkerID string    `json:"workerId"`
	At       time.Time `json:"at"`
}

// ChangeFeed は書き込み完了を他プロセスへ伝え、他プロセスの書き込みをローカルのライブビューへ伝えます。
type ChangeFeed struct {
	client  *redis.Client
	channel string
	origin  string
	log     *zap.Logger
	now     func() time.Time
}

// NewChangeFeed は ChangeFeed を生成します。
func NewChangeFeed(client *redis.Client, channel string, log *zap.Logger) *ChangeFeed {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ChangeFeed{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		log:     log.With(zap.String("component", "change_feed"), zap.String("channel", channel)),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Origin はこのプロセスを識別する値です。
func (f *ChangeFeed) Origin() string {
	return f.origin
}

// WorkerChanged は成功した書き込みをチャネルへ発行します。失敗した書き込みは発行しません。
func (f *ChangeFeed) WorkerChanged(ctx context.Context, ev worker.Event) {
	if ev.Kind == worker.EventWriteFailed {
		return
	}
	if err := f.Publish(ctx, ev.Kind, ev.WorkerID); err != nil {
		f.log.Warn("publish change failed", zap.String("worker_id", ev.WorkerID), zap.Error(err))
	}
}

// Publish は変更メッセージを発行します。
func (f *ChangeFeed) Publish(ctx context.Context, kind worker.EventKind, workerID string) error {
	payload, err := json.Marshal(ChangeMessage{
		Origin:   f.origin,
		Kind:     string(kind),
		WorkerID: workerID,
		At:       f.now(),
	})
	if err != nil {
		return fmt.Errorf("redis: encode change: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis: publish change: %w", err)
	}
	return nil
}

// Run はチャネルを購読し、他プロセスからの変更を notifier へ伝えます。ctx がキャンセルされるまで戻りません。
func (f *ChangeFeed) Run(ctx context.Context, notifier Notifier) error {
	sub := f.client.Subscribe(ctx, f.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("redis: subscribe %s: %w", f.channel, err)
	}

	f.log.Info("change feed subscribed")
	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			f.handle(msg.Payload, notifier)
		}
	}
}

func (f *ChangeFeed) handle(payload string, notifier Notifier) {
	var msg ChangeMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		f.log.Warn("discarding malformed change message", zap.Error(err))
		return
	}
	if msg.Origin == f.origin {
		return
	}

	f.log.Debug("remote change received",
		zap.String("kind", msg.Kind),
		zap.String("worker_id", msg.WorkerID),
		zap.String("origin", msg.Origin),
	)
	notifier.Notify()
}
