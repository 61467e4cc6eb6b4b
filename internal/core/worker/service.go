package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Dispatcher は書き込みを呼び出し元から切り離して実行します。
// Dispatch は完了を待たずに戻らなければなりません。
type Dispatcher interface {
	Dispatch(name string, fn func(context.Context) error) error
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// UseCase は社員レコードユースケースの公開インターフェースです。
type UseCase interface {
	Save(ctx context.Context, w *Worker) (*SaveResult, error)
	UpdateFields(ctx context.Context, id string, patch Patch) (*SaveResult, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Worker, error)
	List(ctx context.Context) ([]*Worker, error)
	Stats(ctx context.Context) (Summary, error)
}

// SaveResult は保存要求の受付結果です。書き込み自体の完了は保証しません。
type SaveResult struct {
	ID      string
	Created bool
}

// Service は社員レコードに関するユースケースをまとめます。
type Service struct {
	repo       Repository
	dispatcher Dispatcher
	clock      Clock
	tx         TransactionManager
	ids        IDGenerator
	sinks      []EventSink
	log        *zap.Logger
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithTransactionManager はトランザクション管理を設定します。
func WithTransactionManager(tx TransactionManager) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

// WithIDGenerator は新規レコードの ID 生成器を設定します。
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Service) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithEventSinks は書き込み完了の通知先を追加します。
func WithEventSinks(sinks ...EventSink) Option {
	return func(s *Service) {
		for _, sink := range sinks {
			if sink != nil {
				s.sinks = append(s.sinks, sink)
			}
		}
	}
}

// WithLogger はロガーを設定します。
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService は Service を生成します。repo が nil の場合、書き込みはログのみ出力して何もしません。
// ID 生成器が指定されず repo が IDGenerator を実装している場合はストアの ID 形式を使います。
func NewService(repo Repository, dispatcher Dispatcher, clock Clock, opts ...Option) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if dispatcher == nil {
		dispatcher = inlineDispatcher{}
	}

	s := &Service{
		repo:       repo,
		dispatcher: dispatcher,
		clock:      clock,
		tx:         noopTransactionManager{},
		log:        zap.NewNop(),
	}
	if gen, ok := repo.(IDGenerator); ok {
		s.ids = gen
	} else {
		s.ids = uuidGenerator{}
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save はレコードを保存します。ID がなければ新規作成、あればマージ更新します。
// 入力チェックは同期的に行い、書き込みは完了を待たずに戻ります。
func (s *Service) Save(ctx context.Context, w *Worker) (*SaveResult, error) {
	if err := Validate(w); err != nil {
		return nil, err
	}

	if !w.Persisted() {
		return s.create(ctx, w)
	}
	return s.UpdateFields(ctx, w.ID, PatchFromWorker(w))
}

// UpdateFields は指定フィールドだけをマージ更新します。
func (s *Service) UpdateFields(ctx context.Context, id string, patch Patch) (*SaveResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	if s.repo == nil {
		s.log.Error("worker store is not available", zap.String("op", "update"), zap.String("worker_id", id))
		return &SaveResult{ID: id}, nil
	}

	patch.UpdatedAt = s.clock.Now()
	name := ""
	if patch.Name != nil {
		name = *patch.Name
	}

	err := s.dispatcher.Dispatch("worker.update", func(taskCtx context.Context) error {
		err := s.tx.WithinReadWrite(taskCtx, func(txCtx context.Context) error {
			return s.repo.Merge(txCtx, id, patch)
		})
		s.emit(taskCtx, EventUpdated, id, name, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SaveResult{ID: id}, nil
}

func (s *Service) create(ctx context.Context, w *Worker) (*SaveResult, error) {
	record := w.Clone()
	record.ID = s.ids.NewID()
	now := s.clock.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	if s.repo == nil {
		s.log.Error("worker store is not available", zap.String("op", "create"))
		return &SaveResult{ID: record.ID, Created: true}, nil
	}

	err := s.dispatcher.Dispatch("worker.create", func(taskCtx context.Context) error {
		err := s.tx.WithinReadWrite(taskCtx, func(txCtx context.Context) error {
			_, err := s.repo.Insert(txCtx, record)
			return err
		})
		s.emit(taskCtx, EventCreated, record.ID, record.Name, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SaveResult{ID: record.ID, Created: true}, nil
}

// Delete はレコードの削除を要求します。削除は取り消せません。
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	if s.repo == nil {
		s.log.Error("worker store is not available", zap.String("op", "delete"), zap.String("worker_id", id))
		return nil
	}

	return s.dispatcher.Dispatch("worker.delete", func(taskCtx context.Context) error {
		var name string
		err := s.tx.WithinReadWrite(taskCtx, func(txCtx context.Context) error {
			if existing, findErr := s.repo.FindByID(txCtx, id); findErr == nil {
				name = existing.Name
			}
			return s.repo.Delete(txCtx, id)
		})
		s.emit(taskCtx, EventDeleted, id, name, err)
		return err
	})
}

// Get は ID でレコードを取得します。
func (s *Service) Get(ctx context.Context, id string) (*Worker, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}

	var result *Worker
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// List は現在のレコード一覧を取得します。順序はストアに依存します。
func (s *Service) List(ctx context.Context) ([]*Worker, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}

	var result []*Worker
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// Stats は現在のレコード一覧から集計値を計算します。
func (s *Service) Stats(ctx context.Context) (Summary, error) {
	workers, err := s.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(workers), nil
}

func (s *Service) emit(ctx context.Context, op EventKind, id, name string, err error) {
	ev := Event{Kind: op, Op: op, WorkerID: id, Name: name}
	if err != nil {
		ev.Kind = EventWriteFailed
		ev.Err = err
		s.log.Warn("worker write failed",
			zap.String("op", string(op)),
			zap.String("worker_id", id),
			zap.Error(err),
		)
	}
	for _, sink := range s.sinks {
		sink.WorkerChanged(ctx, ev)
	}
}

// inlineDispatcher は呼び出し元のゴルーチンで即座にタスクを実行します。
// 書き込みエラーはイベントとして通知され、呼び出し元には返しません。
type inlineDispatcher struct{}

func (inlineDispatcher) Dispatch(_ string, fn func(context.Context) error) error {
	_ = fn(context.Background())
	return nil
}
