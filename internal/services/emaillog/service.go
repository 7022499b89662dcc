package emaillog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
	"github.com/bazarhat/backend/internal/pkg/validate"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

var (
	ErrValidation    = errors.New("email input invalid")
	ErrNotFound      = errors.New("email not found")
	ErrStateConflict = errors.New("email already decided")
)

type EmailStore interface {
	Enqueue(ctx context.Context, item model.EmailItem, actorID *uuid.UUID) (int64, error)
	Transition(ctx context.Context, id int64, from, to enums.EmailState, event enums.EmailEventType, actorID *uuid.UUID) error
	GetByID(ctx context.Context, id int64) (model.EmailItem, error)
	ListByState(ctx context.Context, state enums.EmailState, limit, offset int) ([]model.EmailItem, int, error)
	Events(ctx context.Context, emailItemID int64) ([]model.EmailEvent, error)
}

// Sender delivers an approved email. Delivery failures leave the item in
// the approved state so a later sweep can retry.
type Sender interface {
	Send(ctx context.Context, item model.EmailItem) error
}

type Service struct {
	store    EmailStore
	sender   Sender
	pageSize int
}

func NewService(store EmailStore, sender Sender, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Service{store: store, sender: sender, pageSize: pageSize}
}

type EnqueueInput struct {
	Recipient string
	Subject   string
	Body      string
}

func (s *Service) Enqueue(ctx context.Context, input EnqueueInput, actorID *uuid.UUID) (int64, error) {
	recipient := strings.TrimSpace(input.Recipient)
	if recipient == "" || !strings.Contains(recipient, "@") {
		return 0, ErrValidation
	}
	if !validate.Required(input.Subject) {
		return 0, ErrValidation
	}

	id, err := s.store.Enqueue(ctx, model.EmailItem{
		Recipient:    recipient,
		Subject:      strings.TrimSpace(input.Subject),
		Body:         input.Body,
		CurrentState: enums.EmailStateEnqueued,
	}, actorID)
	if err != nil {
		return 0, fmt.Errorf("enqueue email: %w", err)
	}
	return id, nil
}

// Approve moves an enqueued email to approved and hands it to the sender.
// The first reviewer to decide wins; a concurrent second decision gets
// ErrStateConflict.
func (s *Service) Approve(ctx context.Context, id int64, reviewerID uuid.UUID) error {
	err := s.store.Transition(ctx, id, enums.EmailStateEnqueued, enums.EmailStateApproved, enums.EmailEventApproved, &reviewerID)
	if err != nil {
		return s.mapTransitionErr(err)
	}

	if s.sender == nil {
		return nil
	}
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load email: %w", err)
	}
	if err := s.sender.Send(ctx, item); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	_ = s.store.Transition(ctx, id, enums.EmailStateApproved, enums.EmailStateApproved, enums.EmailEventSent, &reviewerID)
	return nil
}

func (s *Service) Reject(ctx context.Context, id int64, reviewerID uuid.UUID) error {
	err := s.store.Transition(ctx, id, enums.EmailStateEnqueued, enums.EmailStateRejected, enums.EmailEventRejected, &reviewerID)
	if err != nil {
		return s.mapTransitionErr(err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.EmailItem, []model.EmailEvent, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrEmailNotFound) {
			return model.EmailItem{}, nil, ErrNotFound
		}
		return model.EmailItem{}, nil, fmt.Errorf("load email: %w", err)
	}

	events, err := s.store.Events(ctx, id)
	if err != nil {
		return model.EmailItem{}, nil, fmt.Errorf("load email events: %w", err)
	}
	return item, events, nil
}

func (s *Service) ListByState(ctx context.Context, state enums.EmailState, page int) ([]model.EmailItem, int, error) {
	switch state {
	case enums.EmailStateEnqueued, enums.EmailStateApproved, enums.EmailStateRejected:
	default:
		return nil, 0, ErrValidation
	}
	if page < 1 {
		page = 1
	}

	items, total, err := s.store.ListByState(ctx, state, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list emails: %w", err)
	}
	return items, total, nil
}

func (s *Service) mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, pgrepo.ErrEmailStateConflict):
		return ErrStateConflict
	case errors.Is(err, pgrepo.ErrEmailNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("transition email: %w", err)
	}
}
