package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var operatorRowColumns = []string{"id", "email", "name", "password_hash", "status", "created_at", "updated_at"}

func TestOperatorRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewOperatorRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO operators")).
		WithArgs("admin@example.com", "Admin", "hash", string(auth.StatusActive), now, now).
		WillReturnRows(pgxmock.NewRows(operatorRowColumns).
			AddRow("op-1", "admin@example.com", "Admin", "hash", string(auth.StatusActive), now, now))

	op, err := repo.Create(context.Background(), &auth.Operator{
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: "hash",
		Status:       auth.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if op.ID != "op-1" {
		t.Fatalf("unexpected id %s", op.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOperatorRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewOperatorRepository(mock)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO operators")).
		WillReturnError(&pgconn.PgError{Code: operatorUniqueViolationCode})

	_, err = repo.Create(context.Background(), &auth.Operator{Email: "admin@example.com"})
	if !errors.Is(err, auth.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestOperatorRepository_FindByEmail(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewOperatorRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows(operatorRowColumns).
			AddRow("op-1", "admin@example.com", "Admin", "hash", string(auth.StatusActive), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("missing@example.com").
		WillReturnRows(pgxmock.NewRows(operatorRowColumns))

	op, err := repo.FindByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if op.PasswordHash != "hash" {
		t.Fatalf("unexpected operator: %+v", op)
	}

	if _, err := repo.FindByEmail(context.Background(), "missing@example.com"); !errors.Is(err, auth.ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOperatorRepository_FindByIDInvalidUUID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewOperatorRepository(mock)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	if _, err := repo.FindByID(context.Background(), "not-a-uuid"); !errors.Is(err, auth.ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound, got %v", err)
	}
}
