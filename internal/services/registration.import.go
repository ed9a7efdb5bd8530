package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain"
	"github.com/Prabhugems/AMASI-management-sub013/internal/domain/vo"
	sharedseq "github.com/Prabhugems/AMASI-management-sub013/internal/shared/seq"
	shareduid "github.com/Prabhugems/AMASI-management-sub013/internal/shared/uid"
)

// registrationNoWidth zero-pads registration numbers, e.g. "FMAS108-1001".
const registrationNoWidth = 4

type RegistrationRepository interface {
	ListRegistrationNumbersByPrefix(ctx context.Context, eventCode, prefix string) ([]string, error)
	InsertRegistration(ctx context.Context, registration domain.Registration) error
}

type RegistrationImportService struct {
	repository   RegistrationRepository
	uidGenerator shareduid.UIDGenerator
}

func NewRegistrationImportService(repository RegistrationRepository, uidGenerator shareduid.UIDGenerator) *RegistrationImportService {
	return &RegistrationImportService{repository: repository, uidGenerator: uidGenerator}
}

// Import reads a CSV of registrations (full_name, email, phone, category)
// and inserts them with sequential registration numbers. Numbers are
// pre-allocated for the whole batch from a single prefix scan; each row
// consumes its number whether or not the row itself succeeds, so a failed
// row never shifts the numbers of the rows after it. A failed row aborts
// that row only; the batch continues and the summary reports every outcome.
//
// Two imports for the same event must not run at the same time: both would
// scan the same highest number and allocate overlapping ranges.
func (s *RegistrationImportService) Import(ctx context.Context, eventCode string, csvData io.Reader) (vo.ImportSummary, error) {
	eventCode = strings.ToUpper(strings.TrimSpace(eventCode))
	if eventCode == "" {
		return vo.ImportSummary{}, vo.ErrEventCodeRequired
	}

	rows, firstLine, err := readImportRows(csvData)
	if err != nil {
		return vo.ImportSummary{}, err
	}
	if len(rows) == 0 {
		return vo.ImportSummary{}, vo.ErrEmptyImportFile
	}

	prefix := eventCode + "-"
	sequencer, err := sharedseq.NewMaxScan(
		sharedseq.Format{Prefix: prefix, Width: registrationNoWidth},
		func(ctx context.Context) ([]string, error) {
			return s.repository.ListRegistrationNumbersByPrefix(ctx, eventCode, prefix)
		},
	)
	if err != nil {
		return vo.ImportSummary{}, fmt.Errorf("service: failed to build sequencer: %w", err)
	}

	numbers, err := sharedseq.AllocateBatch(ctx, sequencer, len(rows))
	if err != nil {
		return vo.ImportSummary{}, fmt.Errorf("service: failed to allocate registration numbers: %w", err)
	}

	summary := vo.ImportSummary{EventCode: eventCode, Total: len(rows)}
	for i, row := range rows {
		result := vo.ImportRow{
			Line:           firstLine + i,
			RegistrationNo: numbers[i],
		}

		registration, rowErr := s.buildRegistration(ctx, eventCode, numbers[i], row)
		if rowErr == nil {
			result.Email = registration.Email
			rowErr = s.repository.InsertRegistration(ctx, registration)
		}

		if rowErr != nil {
			result.Status = vo.ImportRowFailed
			result.Error = rowErr.Error()
			summary.Failed++
		} else {
			result.Status = vo.ImportRowImported
			summary.Imported++
		}

		summary.Rows = append(summary.Rows, result)
	}

	return summary, nil
}

// readImportRows parses the CSV and strips an optional header row. It
// returns the data rows and the 1-based line number of the first data row.
func readImportRows(csvData io.Reader) ([][]string, int, error) {
	reader := csv.NewReader(csvData)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", vo.ErrInvalidImportFile, err)
	}

	firstLine := 1
	if len(records) > 0 && isHeaderRow(records[0]) {
		records = records[1:]
		firstLine = 2
	}

	return records, firstLine, nil
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "full_name" || first == "name" || first == "full name"
}

func (s *RegistrationImportService) buildRegistration(ctx context.Context, eventCode, number string, row []string) (domain.Registration, error) {
	if len(row) < 2 {
		return domain.Registration{}, fmt.Errorf("row needs at least full_name and email")
	}

	fullName := strings.TrimSpace(row[0])
	if fullName == "" {
		return domain.Registration{}, fmt.Errorf("full_name is required")
	}

	email := strings.ToLower(strings.TrimSpace(row[1]))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Registration{}, fmt.Errorf("email %q is not valid", row[1])
	}

	registration := domain.Registration{
		EventCode:      eventCode,
		RegistrationNo: number,
		FullName:       fullName,
		Email:          email,
	}
	if len(row) > 2 {
		registration.Phone = strings.TrimSpace(row[2])
	}
	if len(row) > 3 {
		registration.Category = strings.TrimSpace(row[3])
	}

	id, err := s.uidGenerator.Generate(ctx)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("failed to generate registration id: %v", err)
	}
	registration.ID = id

	return registration, nil
}
