package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	pgdb "github.com/ogurasousui/onboarding-tracker/internal/platform/db/postgres"
)

const workerUniqueViolationCode = "23505"

// workerColumns は Patch のフィールド名と remote_workers のカラム名の対応です。
var workerColumns = map[string]string{
	worker.FieldName:                               "name",
	worker.FieldAddress:                            "address",
	worker.FieldLocation:                           "location",
	worker.FieldPhoneNumber:                        "phone_number",
	worker.FieldEmailAddress:                       "email_address",
	worker.FieldJobTitle:                           "job_title",
	worker.FieldDepartment:                         "department",
	worker.FieldManager:                            "manager",
	worker.FieldStartDate:                          "start_date",
	worker.FieldSecurityIDReceived:                 "security_id_received",
	worker.FieldPCMeetsMinimumSpecifications:       "pc_meets_minimum_specifications",
	worker.FieldInternetMeetsMinimumSpecifications: "internet_meets_minimum_specifications",
	worker.FieldNDASigned:                          "nda_signed",
	worker.FieldBankingDetailsReceived:             "banking_details_received",
	worker.FieldVPNAccessGranted:                   "vpn_access_granted",
	worker.FieldEquipmentShipped:                   "equipment_shipped",
	worker.FieldWelcomeKitSent:                     "welcome_kit_sent",
	worker.FieldHRDocumentsSigned:                  "hr_documents_signed",
}

const workerSelectColumns = `id, name, address, location, phone_number, email_address, job_title, department, manager, start_date,
               security_id_received, pc_meets_minimum_specifications, internet_meets_minimum_specifications,
               nda_signed, banking_details_received, vpn_access_granted, equipment_shipped, welcome_kit_sent,
               hr_documents_signed, created_at, updated_at`

// WorkerRepository は PostgreSQL を利用した社員レコード永続化の実装です。
type WorkerRepository struct {
	pool pgdb.Queryer
}

// NewWorkerRepository は WorkerRepository を生成します。
func NewWorkerRepository(pool pgdb.Queryer) *WorkerRepository {
	return &WorkerRepository{pool: pool}
}

// Insert は ID 付きのレコードを新規作成します。
func (r *WorkerRepository) Insert(ctx context.Context, w *worker.Worker) (*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	c := w.Checklist
	row := exec.QueryRow(ctx, `
        INSERT INTO remote_workers (id, name, address, location, phone_number, email_address, job_title, department, manager, start_date,
               security_id_received, pc_meets_minimum_specifications, internet_meets_minimum_specifications,
               nda_signed, banking_details_received, vpn_access_granted, equipment_shipped, welcome_kit_sent,
               hr_documents_signed, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
        RETURNING `+workerSelectColumns,
		w.ID,
		w.Name,
		w.Address,
		w.Location,
		w.PhoneNumber,
		w.EmailAddress,
		w.JobTitle,
		w.Department,
		w.Manager,
		w.StartDate,
		c.SecurityIDReceived,
		c.PCMeetsMinimumSpecifications,
		c.InternetMeetsMinimumSpecifications,
		c.NDASigned,
		c.BankingDetailsReceived,
		c.VPNAccessGranted,
		c.EquipmentShipped,
		c.WelcomeKitSent,
		c.HRDocumentsSigned,
		w.CreatedAt,
		w.UpdatedAt,
	)

	created, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return created, nil
}

// Merge は patch に含まれるカラムだけを更新します。対象が存在しない場合は ErrWorkerNotFound を返します。
func (r *WorkerRepository) Merge(ctx context.Context, id string, patch worker.Patch) error {
	query, args, err := buildMergeQuery(id, patch)
	if err != nil {
		return err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, query, args...)
	if err != nil {
		return translateWorkerPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

func buildMergeQuery(id string, patch worker.Patch) (string, []any, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return "", nil, worker.ErrEmptyPatch
	}

	args := make([]any, 0, len(fields)+2)
	sets := make([]string, 0, len(fields)+1)

	for _, f := range fields {
		col, ok := workerColumns[f.Name]
		if !ok {
			return "", nil, fmt.Errorf("postgres: unknown worker field %q", f.Name)
		}
		args = append(args, f.Value)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}

	updatedAt := patch.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	args = append(args, updatedAt)
	sets = append(sets, "updated_at = $"+strconv.Itoa(len(args)))

	args = append(args, id)
	query := "UPDATE remote_workers SET " + strings.Join(sets, ", ") + " WHERE id = $" + strconv.Itoa(len(args))

	return query, args, nil
}

// Delete はレコードを削除します。
func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM remote_workers WHERE id = $1`, id)
	if err != nil {
		return translateWorkerPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// FindByID は ID でレコードを取得します。
func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+workerSelectColumns+`
          FROM remote_workers
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return found, nil
}

// List は全レコードを作成順に取得します。
func (r *WorkerRepository) List(ctx context.Context) ([]*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+workerSelectColumns+`
          FROM remote_workers
         ORDER BY created_at ASC, id ASC
    `)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	defer rows.Close()

	workers := make([]*worker.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, translateWorkerPgError(err)
		}
		workers = append(workers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, translateWorkerPgError(err)
	}

	return workers, nil
}

func scanWorker(row pgx.Row) (*worker.Worker, error) {
	var (
		w                    worker.Worker
		createdAt, updatedAt time.Time
	)
	c := &w.Checklist

	if err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Address,
		&w.Location,
		&w.PhoneNumber,
		&w.EmailAddress,
		&w.JobTitle,
		&w.Department,
		&w.Manager,
		&w.StartDate,
		&c.SecurityIDReceived,
		&c.PCMeetsMinimumSpecifications,
		&c.InternetMeetsMinimumSpecifications,
		&c.NDASigned,
		&c.BankingDetailsReceived,
		&c.VPNAccessGranted,
		&c.EquipmentShipped,
		&c.WelcomeKitSent,
		&c.HRDocumentsSigned,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, worker.ErrWorkerNotFound
		}
		return nil, err
	}

	w.CreatedAt = createdAt.UTC()
	w.UpdatedAt = updatedAt.UTC()
	return &w, nil
}

func translateWorkerPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return worker.ErrWorkerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == workerUniqueViolationCode {
		return worker.ErrWorkerAlreadyExists
	}

	return err
}
