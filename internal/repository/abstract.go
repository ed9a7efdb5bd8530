package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain"
	sharedseq "github.com/Prabhugems/AMASI-management-sub013/internal/shared/seq"
)

// abstractNoConstraint is the unique constraint on (event_code, abstract_no).
// Violations of this constraint, and only this one, are retryable allocation
// conflicts.
const abstractNoConstraint = "abstracts_event_code_abstract_no_key"

type AbstractRepository struct {
	db *sqlx.DB
}

type abstractRow struct {
	ID             string    `db:"id"`
	EventCode      string    `db:"event_code"`
	AbstractNo     string    `db:"abstract_no"`
	Title          string    `db:"title"`
	Category       string    `db:"category"`
	PresenterName  string    `db:"presenter_name"`
	PresenterEmail string    `db:"presenter_email"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}

func NewAbstractRepository(db *sqlx.DB) *AbstractRepository {
	return &AbstractRepository{db: db}
}

// NextAbstractSequence advances the per-event abstract counter and returns
// the new value. The increment happens server-side in a single statement;
// the counter is never read before it is written, so concurrent submissions
// cannot observe the same value.
func (r *AbstractRepository) NextAbstractSequence(ctx context.Context, eventCode string) (int64, error) {
	eventCode = strings.TrimSpace(eventCode)
	if eventCode == "" {
		return 0, fmt.Errorf("repository: event code is required")
	}

	const query = `
INSERT INTO abstract_counters (event_code, last_value)
VALUES ($1, 1001)
ON CONFLICT (event_code)
DO UPDATE SET last_value = abstract_counters.last_value + 1
RETURNING last_value`

	var value int64
	if err := r.db.GetContext(ctx, &value, query, eventCode); err != nil {
		return 0, fmt.Errorf("repository: next abstract sequence failed: %w", err)
	}

	return value, nil
}

// InsertAbstract persists the abstract. A duplicate abstract number within
// the event is reported as a seq.ErrIdentifierConflict so the allocation
// loop can retry with a fresh candidate.
func (r *AbstractRepository) InsertAbstract(ctx context.Context, abstract domain.Abstract) error {
	const query = `
INSERT INTO abstracts (
	id, event_code, abstract_no, title, category, presenter_name, presenter_email, status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`

	_, err := r.db.ExecContext(ctx, query,
		abstract.ID,
		abstract.EventCode,
		abstract.AbstractNo,
		abstract.Title,
		abstract.Category,
		abstract.PresenterName,
		abstract.PresenterEmail,
		abstract.Status,
	)
	if err != nil {
		if isUniqueViolation(err, abstractNoConstraint) {
			return fmt.Errorf("repository: abstract number %s taken: %w", abstract.AbstractNo, sharedseq.ErrIdentifierConflict)
		}
		return fmt.Errorf("repository: insert abstract failed: %w", err)
	}

	return nil
}

func (r *AbstractRepository) ListAbstractsByEvent(ctx context.Context, eventCode string) ([]domain.Abstract, error) {
	const query = `
SELECT id::text AS id, event_code, abstract_no, title, category, presenter_name, presenter_email, status, created_at
FROM abstracts
WHERE event_code = $1
ORDER BY abstract_no`

	var rows []abstractRow
	if err := r.db.SelectContext(ctx, &rows, query, eventCode); err != nil {
		return nil, fmt.Errorf("repository: list abstracts failed: %w", err)
	}

	abstracts := make([]domain.Abstract, 0, len(rows))
	for _, row := range rows {
		abstracts = append(abstracts, domain.Abstract(row))
	}

	return abstracts, nil
}
