package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	pgdb "github.com/ogurasousui/onboarding-tracker/internal/platform/db/postgres"
)

const operatorUniqueViolationCode = "23505"

// OperatorRepository は PostgreSQL を利用したオペレーター永続化の実装です。
type OperatorRepository struct {
	pool pgdb.Queryer
}

// NewOperatorRepository は OperatorRepository を生成します。
func NewOperatorRepository(pool pgdb.Queryer) *OperatorRepository {
	return &OperatorRepository{pool: pool}
}

// Create はオペレーターを新規作成します。
func (r *OperatorRepository) Create(ctx context.Context, op *auth.Operator) (*auth.Operator, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO operators (email, name, password_hash, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, email, name, password_hash, status, created_at, updated_at
    `, op.Email, op.Name, op.PasswordHash, string(op.Status), op.CreatedAt, op.UpdatedAt)

	created, err := scanOperator(row)
	if err != nil {
		return nil, translateOperatorPgError(err)
	}
	return created, nil
}

// FindByID は ID でオペレーターを取得します。
func (r *OperatorRepository) FindByID(ctx context.Context, id string) (*auth.Operator, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, email, name, password_hash, status, created_at, updated_at
          FROM operators
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanOperator(row)
	if err != nil {
		return nil, translateOperatorPgError(err)
	}
	return found, nil
}

// FindByEmail はメールアドレスでオペレーターを取得します。
func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*auth.Operator, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, email, name, password_hash, status, created_at, updated_at
          FROM operators
         WHERE email = $1
         LIMIT 1
    `, email)

	found, err := scanOperator(row)
	if err != nil {
		return nil, translateOperatorPgError(err)
	}
	return found, nil
}

func scanOperator(row pgx.Row) (*auth.Operator, error) {
	var (
		id, email, name, hash, status string
		createdAt, updatedAt          time.Time
	)

	if err := row.Scan(&id, &email, &name, &hash, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrOperatorNotFound
		}
		return nil, err
	}

	return &auth.Operator{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Status:       auth.Status(status),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func translateOperatorPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.ErrOperatorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case operatorUniqueViolationCode:
			return auth.ErrEmailAlreadyExists
		case "22P02":
			// invalid_text_representation: id is not a uuid
			return auth.ErrOperatorNotFound
		}
	}
	return err
}
