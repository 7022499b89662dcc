package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bazarhat/backend/internal/domain/model"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("report input invalid")
	ErrNotFound   = errors.New("report not found")
)

// Reasons a visitor can pick when flagging an ad.
var reportReasons = map[string]string{
	"scam":          "Scam or fraud",
	"prohibited":    "Prohibited item",
	"duplicate":     "Duplicate listing",
	"wrong_info":    "Wrong or misleading information",
	"offensive":     "Offensive content",
	"sold_already":  "Item already sold",
	"wrong_contact": "Unreachable or wrong contact",
	"other":         "Other",
}

const maxDetailsLength = 1000

type ReportStore interface {
	Create(ctx context.Context, report model.Report) (int64, error)
	ListOpen(ctx context.Context, limit, offset int) ([]model.Report, int, error)
	ListByAd(ctx context.Context, adID uuid.UUID) ([]model.Report, error)
	Resolve(ctx context.Context, id int64, resolvedBy uuid.UUID) error
	ResolveByAd(ctx context.Context, adID uuid.UUID, resolvedBy uuid.UUID) (int64, error)
}

type AdStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Ad, error)
}

type AuditStore interface {
	Create(ctx context.Context, log model.AdAuditLog) error
}

type Service struct {
	reports  ReportStore
	ads      AdStore
	audits   AuditStore
	pageSize int
}

func NewService(reports ReportStore, ads AdStore, audits AuditStore, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Service{reports: reports, ads: ads, audits: audits, pageSize: pageSize}
}

type CreateInput struct {
	AdID    uuid.UUID
	Reason  string
	Details string
}

func (s *Service) Create(ctx context.Context, reporterID uuid.UUID, input CreateInput) (int64, error) {
	if _, ok := reportReasons[input.Reason]; !ok {
		return 0, ErrValidation
	}
	details := strings.TrimSpace(input.Details)
	if len(details) > maxDetailsLength {
		return 0, ErrValidation
	}
	if input.Reason == "other" && details == "" {
		return 0, ErrValidation
	}

	if _, err := s.ads.GetByID(ctx, input.AdID); err != nil {
		if errors.Is(err, pgrepo.ErrAdNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("load ad: %w", err)
	}

	id, err := s.reports.Create(ctx, model.Report{
		AdID:       input.AdID,
		ReporterID: reporterID,
		Reason:     input.Reason,
		Details:    details,
	})
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	return id, nil
}

func (s *Service) ListOpen(ctx context.Context, page int) ([]model.Report, int, error) {
	if page < 1 {
		page = 1
	}
	reports, total, err := s.reports.ListOpen(ctx, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list open reports: %w", err)
	}
	return reports, total, nil
}

func (s *Service) ListForAd(ctx context.Context, adID uuid.UUID) ([]model.Report, error) {
	reports, err := s.reports.ListByAd(ctx, adID)
	if err != nil {
		return nil, fmt.Errorf("list ad reports: %w", err)
	}
	return reports, nil
}

func (s *Service) Resolve(ctx context.Context, id int64, moderatorID uuid.UUID) error {
	if err := s.reports.Resolve(ctx, id, moderatorID); err != nil {
		if errors.Is(err, pgrepo.ErrReportNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("resolve report: %w", err)
	}
	return nil
}

// ResolveForAd closes every open report against the ad in one sweep, used
// after a moderator has acted on the ad itself.
func (s *Service) ResolveForAd(ctx context.Context, adID, moderatorID uuid.UUID) (int64, error) {
	n, err := s.reports.ResolveByAd(ctx, adID, moderatorID)
	if err != nil {
		return 0, fmt.Errorf("resolve ad reports: %w", err)
	}

	if n > 0 && s.audits != nil {
		_ = s.audits.Create(ctx, model.AdAuditLog{
			AdID:    adID,
			ActorID: moderatorID,
			Action:  "reports_resolved",
			Details: map[string]any{"count": n},
		})
	}
	return n, nil
}

// Reasons returns the report taxonomy codes in stable order.
func Reasons() []string {
	out := make([]string, 0, len(reportReasons))
	for code := range reportReasons {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ReasonLabel resolves a taxonomy code to its display text.
func ReasonLabel(code string) (string, bool) {
	label, ok := reportReasons[code]
	return label, ok
}
