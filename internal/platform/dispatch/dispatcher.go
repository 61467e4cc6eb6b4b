package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrQueueFull はキューに空きがなくタスクを受け付けられない場合に返却されます。
	ErrQueueFull = errors.New("dispatch: queue is full")
	// ErrClosed は停止済みの Dispatcher にタスクを投入した場合に返却されます。
	ErrClosed = errors.New("dispatch: dispatcher is closed")
)

// ErrorHandler はタスクの失敗を非同期に受け取ります。
type ErrorHandler func(task string, err error)

// Options は Dispatcher の設定です。
type Options struct {
	QueueSize int
	Workers   int
	// Timeout bounds a single task; zero means no per-task deadline.
	Timeout time.Duration
	OnError ErrorHandler
	Logger  *zap.Logger
}

type task struct {
	name string
	fn   func(context.Context) error
}

// Dispatcher は書き込みタスクを有界キュー経由でバックグラウンド実行します。
// 各タスクは最大 1 回だけ実行され、失敗しても再試行しません。
type Dispatcher struct {
	queue   chan task
	workers int
	timeout time.Duration
	onError ErrorHandler
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool

	failed    atomic.Int64
	completed atomic.Int64
}

// New は Dispatcher を生成します。Run を呼ぶまでタスクは実行されません。
func New(opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Dispatcher{
		queue:   make(chan task, opts.QueueSize),
		workers: opts.Workers,
		timeout: opts.Timeout,
		onError: opts.OnError,
		log:     opts.Logger,
	}
}

// Dispatch はタスクをキューへ投入し、実行を待たずに戻ります。
func (d *Dispatcher) Dispatch(name string, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("dispatch: task %s has no function", name)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- task{name: name, fn: fn}:
		return nil
	default:
		d.report(name, ErrQueueFull)
		return ErrQueueFull
	}
}

// Run はワーカーを起動し、ctx がキャンセルされるとキューに残ったタスクを処理してから戻ります。
func (d *Dispatcher) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case t := <-d.queue:
					d.execute(context.WithoutCancel(gctx), t)
				}
			}
		})
	}

	err := g.Wait()

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.drain(context.WithoutCancel(ctx))
	return err
}

// Stats は完了数と失敗数を返します。
func (d *Dispatcher) Stats() (completed, failed int64) {
	return d.completed.Load(), d.failed.Load()
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case t := <-d.queue:
			d.execute(ctx, t)
		default:
			return
		}
	}
}

func (d *Dispatcher) execute(ctx context.Context, t task) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			d.report(t.name, fmt.Errorf("dispatch: task panicked: %v", r))
		}
	}()

	if err := t.fn(ctx); err != nil {
		d.report(t.name, err)
		return
	}
	d.completed.Add(1)
}

func (d *Dispatcher) report(name string, err error) {
	d.failed.Add(1)
	d.log.Warn("background task failed", zap.String("task", name), zap.Error(err))
	if d.onError != nil {
		d.onError(name, err)
	}
}
