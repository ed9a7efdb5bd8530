package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain"
	"github.com/Prabhugems/AMASI-management-sub013/internal/domain/vo"
	sharedseq "github.com/Prabhugems/AMASI-management-sub013/internal/shared/seq"
	shareduid "github.com/Prabhugems/AMASI-management-sub013/internal/shared/uid"
)

// abstractMarker separates the event code from the numeric suffix in an
// abstract number, e.g. "121A1005".
const abstractMarker = "A"

type AbstractRepository interface {
	NextAbstractSequence(ctx context.Context, eventCode string) (int64, error)
	InsertAbstract(ctx context.Context, abstract domain.Abstract) error
	ListAbstractsByEvent(ctx context.Context, eventCode string) ([]domain.Abstract, error)
}

type SubmitAbstractInput struct {
	Title          string
	Category       string
	PresenterName  string
	PresenterEmail string
}

type AbstractService struct {
	repository   AbstractRepository
	uidGenerator shareduid.UIDGenerator
}

func NewAbstractService(repository AbstractRepository, uidGenerator shareduid.UIDGenerator) *AbstractService {
	return &AbstractService{repository: repository, uidGenerator: uidGenerator}
}

// Submit allocates an abstract number for the event and persists the
// abstract in one conflict-retry loop. The number comes from the per-event
// atomic counter; if another submission wins the race for a candidate, the
// loop requests a fresh one, up to the allocation bound.
func (s *AbstractService) Submit(ctx context.Context, eventCode string, input SubmitAbstractInput) (vo.AbstractSubmission, error) {
	eventCode = strings.ToUpper(strings.TrimSpace(eventCode))
	if eventCode == "" {
		return vo.AbstractSubmission{}, vo.ErrEventCodeRequired
	}

	if err := validateSubmission(input); err != nil {
		return vo.AbstractSubmission{}, err
	}

	sequencer, err := sharedseq.NewCounter(
		sharedseq.Format{Prefix: eventCode + abstractMarker},
		func(ctx context.Context) (int64, error) {
			return s.repository.NextAbstractSequence(ctx, eventCode)
		},
	)
	if err != nil {
		return vo.AbstractSubmission{}, fmt.Errorf("service: failed to build sequencer: %w", err)
	}

	id, err := s.uidGenerator.Generate(ctx)
	if err != nil {
		return vo.AbstractSubmission{}, fmt.Errorf("service: failed to generate abstract id: %w", err)
	}

	var created domain.Abstract
	_, err = sharedseq.AllocateAndInsert(ctx, sequencer, func(ctx context.Context, candidate string) error {
		record := domain.Abstract{
			ID:             id,
			EventCode:      eventCode,
			AbstractNo:     candidate,
			Title:          strings.TrimSpace(input.Title),
			Category:       strings.TrimSpace(input.Category),
			PresenterName:  strings.TrimSpace(input.PresenterName),
			PresenterEmail: strings.ToLower(strings.TrimSpace(input.PresenterEmail)),
			Status:         "submitted",
		}
		if err := s.repository.InsertAbstract(ctx, record); err != nil {
			return err
		}
		created = record
		return nil
	})
	if err != nil {
		if errors.Is(err, sharedseq.ErrExhausted) {
			return vo.AbstractSubmission{}, vo.ErrAbstractNumberExhausted
		}
		return vo.AbstractSubmission{}, err
	}

	return abstractView(created), nil
}

func (s *AbstractService) ListByEvent(ctx context.Context, eventCode string) ([]vo.AbstractSubmission, error) {
	eventCode = strings.ToUpper(strings.TrimSpace(eventCode))
	if eventCode == "" {
		return nil, vo.ErrEventCodeRequired
	}

	abstracts, err := s.repository.ListAbstractsByEvent(ctx, eventCode)
	if err != nil {
		return nil, err
	}

	views := make([]vo.AbstractSubmission, 0, len(abstracts))
	for _, abstract := range abstracts {
		views = append(views, abstractView(abstract))
	}

	return views, nil
}

func validateSubmission(input SubmitAbstractInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", vo.ErrInvalidSubmission)
	}
	if strings.TrimSpace(input.Category) == "" {
		return fmt.Errorf("%w: category is required", vo.ErrInvalidSubmission)
	}
	email := strings.TrimSpace(input.PresenterEmail)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: presenter email is required", vo.ErrInvalidSubmission)
	}
	return nil
}

func abstractView(abstract domain.Abstract) vo.AbstractSubmission {
	return vo.AbstractSubmission{
		ID:             abstract.ID,
		EventCode:      abstract.EventCode,
		AbstractNo:     abstract.AbstractNo,
		Title:          abstract.Title,
		Category:       abstract.Category,
		PresenterName:  abstract.PresenterName,
		PresenterEmail: abstract.PresenterEmail,
		Status:         abstract.Status,
		CreatedAt:      abstract.CreatedAt,
	}
}
