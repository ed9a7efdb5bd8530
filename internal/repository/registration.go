package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain"
	sharedseq "github.com/Prabhugems/AMASI-management-sub013/internal/shared/seq"
)

// registrationNoConstraint is the unique constraint on
// (event_code, registration_no).
const registrationNoConstraint = "registrations_event_code_registration_no_key"

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// ListRegistrationNumbersByPrefix returns every registration number in the
// event that starts with the given prefix. The Max-Scan sequencer seeds its
// cursor from this list; numbers in other historical formats come back too
// and are skipped by the scan.
func (r *RegistrationRepository) ListRegistrationNumbersByPrefix(ctx context.Context, eventCode, prefix string) ([]string, error) {
	eventCode = strings.TrimSpace(eventCode)
	if eventCode == "" {
		return nil, fmt.Errorf("repository: event code is required")
	}

	const query = `
SELECT registration_no
FROM registrations
WHERE event_code = $1 AND registration_no LIKE $2 || '%'`

	var numbers []string
	if err := r.db.SelectContext(ctx, &numbers, query, eventCode, prefix); err != nil {
		return nil, fmt.Errorf("repository: list registration numbers failed: %w", err)
	}

	return numbers, nil
}

// InsertRegistration persists one imported registration. A duplicate
// registration number within the event maps to seq.ErrIdentifierConflict;
// any other failure (for example the unique email constraint) is returned
// as-is so the import marks the row failed without retrying.
func (r *RegistrationRepository) InsertRegistration(ctx context.Context, registration domain.Registration) error {
	const query = `
INSERT INTO registrations (
	id, event_code, registration_no, full_name, email, phone, category, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, now())`

	_, err := r.db.ExecContext(ctx, query,
		registration.ID,
		registration.EventCode,
		registration.RegistrationNo,
		registration.FullName,
		registration.Email,
		registration.Phone,
		registration.Category,
	)
	if err != nil {
		if isUniqueViolation(err, registrationNoConstraint) {
			return fmt.Errorf("repository: registration number %s taken: %w", registration.RegistrationNo, sharedseq.ErrIdentifierConflict)
		}
		return fmt.Errorf("repository: insert registration failed: %w", err)
	}

	return nil
}
