package auth

import "context"

// Repository はオペレーターの永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, op *Operator) (*Operator, error)
	FindByID(ctx context.Context, id string) (*Operator, error)
	FindByEmail(ctx context.Context, email string) (*Operator, error)
}
