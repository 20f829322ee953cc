// Package dispatchinfra provides the Postgres email-log repository and the
// Fiber handlers for the dispatch routes.
package dispatchinfra

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/postwave/postwave/pkg/dispatch"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/kernel"
)

// PostgresLogRepository is the Postgres implementation of dispatch.LogRepository.
type PostgresLogRepository struct {
	db *sqlx.DB
}

// NewPostgresLogRepository creates the repository.
func NewPostgresLogRepository(db *sqlx.DB) dispatch.LogRepository {
	return &PostgresLogRepository{db: db}
}

type logRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Subject     string         `db:"subject"`
	Body        string         `db:"body"`
	Recipients  pq.StringArray `db:"recipients"`
	Attachments pq.StringArray `db:"attachments"`
	SentCount   int            `db:"sent_count"`
	FailedCount int            `db:"failed_count"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
}

func toRow(l dispatch.EmailLog) logRow {
	return logRow{
		ID:          l.ID.String(),
		UserID:      l.UserID.String(),
		Subject:     l.Subject,
		Body:        l.Body,
		Recipients:  pq.StringArray(l.Recipients),
		Attachments: pq.StringArray(l.Attachments),
		SentCount:   l.SentCount,
		FailedCount: l.FailedCount,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
	}
}

func (r logRow) toDomain() dispatch.EmailLog {
	return dispatch.EmailLog{
		ID:          kernel.LogID(r.ID),
		UserID:      kernel.UserID(r.UserID),
		Subject:     r.Subject,
		Body:        r.Body,
		Recipients:  []string(r.Recipients),
		Attachments: []string(r.Attachments),
		SentCount:   r.SentCount,
		FailedCount: r.FailedCount,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

// Save appends one log row. Logs are never updated afterwards.
func (r *PostgresLogRepository) Save(ctx context.Context, log dispatch.EmailLog) error {
	query := `
		INSERT INTO email_logs (id, user_id, subject, body, recipients, attachments,
		                        sent_count, failed_count, status, created_at)
		VALUES (:id, :user_id, :subject, :body, :recipients, :attachments,
		        :sent_count, :failed_count, :status, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, toRow(log)); err != nil {
		return errx.Wrap(err, "failed to save email log", errx.TypeInternal).
			WithDetail("log_id", log.ID.String())
	}
	return nil
}

// FindByUser returns the user's logs newest first.
func (r *PostgresLogRepository) FindByUser(ctx context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (kernel.Paginated[dispatch.EmailLog], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM email_logs WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID.String()); err != nil {
		return kernel.Paginated[dispatch.EmailLog]{}, errx.Wrap(err, "failed to count email logs", errx.TypeInternal)
	}

	var rows []logRow
	query := `
		SELECT * FROM email_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	offset := (opts.Page - 1) * opts.PageSize
	if err := r.db.SelectContext(ctx, &rows, query, userID.String(), opts.PageSize, offset); err != nil {
		return kernel.Paginated[dispatch.EmailLog]{}, errx.Wrap(err, "failed to list email logs", errx.TypeInternal)
	}

	logs := make([]dispatch.EmailLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toDomain())
	}
	return kernel.NewPaginated(logs, opts.Page, opts.PageSize, total), nil
}
