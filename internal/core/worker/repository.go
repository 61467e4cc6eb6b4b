package worker

import "context"

// Repository は remoteWorkers コレクションの永続化の抽象です。
type Repository interface {
	// Insert は ID 付きのレコードを新規作成します。
	Insert(ctx context.Context, w *Worker) (*Worker, error)
	// Merge は patch に含まれるフィールドだけを既存レコードへ書き込みます。
	Merge(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Worker, error)
	List(ctx context.Context) ([]*Worker, error)
}

// IDGenerator はストアが払い出す識別子を生成します。
type IDGenerator interface {
	NewID() string
}
