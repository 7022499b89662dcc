package dto

import (
	"time"

	"github.com/bazarhat/backend/internal/domain/model"
	"github.com/bazarhat/backend/internal/services/moderation"
)

type DiffEntryResponse struct {
	Key string `json:"key"`
	Old string `json:"old"`
	New string `json:"new"`
}

type EditRequestResponse struct {
	ID        string    `json:"id"`
	AdID      string    `json:"ad_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileReviewResponse struct {
	UserID             string `json:"user_id"`
	DisplayName        string `json:"display_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	AltPhone           string `json:"alt_phone"`
	SellerType         string `json:"seller_type"`
	ShowPhone          bool   `json:"show_phone"`
	PhoneVerified      bool   `json:"phone_verified"`
	VerificationStatus string `json:"verification_status"`
	IsBlocked          bool   `json:"is_blocked"`
}

func NewProfileReviewResponse(p model.Profile) ProfileReviewResponse {
	return ProfileReviewResponse{
		UserID:             p.UserID.String(),
		DisplayName:        p.DisplayName,
		Email:              p.Email,
		Phone:              p.Phone,
		AltPhone:           p.AltPhone,
		SellerType:         p.SellerType,
		ShowPhone:          p.ShowPhone,
		PhoneVerified:      p.PhoneVerified,
		VerificationStatus: string(p.VerificationStatus),
		IsBlocked:          p.IsBlocked,
	}
}

type QueueItemResponse struct {
	Queue        string                `json:"queue"`
	Ad           AdResponse            `json:"ad"`
	Profile      ProfileReviewResponse `json:"profile"`
	ImageURLs    []string              `json:"image_urls"`
	EditRequest  *EditRequestResponse  `json:"edit_request,omitempty"`
	Diff         []DiffEntryResponse   `json:"diff,omitempty"`
	DiffOverflow int                   `json:"diff_overflow,omitempty"`
}

func NewQueueItemResponse(item moderation.QueueItem) QueueItemResponse {
	resp := QueueItemResponse{
		Queue:        string(item.Queue),
		Ad:           NewAdResponse(item.Ad),
		Profile:      NewProfileReviewResponse(item.Profile),
		ImageURLs:    item.ImageURLs,
		DiffOverflow: item.DiffOverflow,
	}
	if item.EditRequest != nil {
		resp.EditRequest = &EditRequestResponse{
			ID:        item.EditRequest.ID.String(),
			AdID:      item.EditRequest.AdID.String(),
			Status:    string(item.EditRequest.Status),
			CreatedAt: item.EditRequest.CreatedAt,
		}
	}
	for _, entry := range item.Diff {
		resp.Diff = append(resp.Diff, DiffEntryResponse{Key: entry.Key, Old: entry.Old, New: entry.New})
	}
	return resp
}

// ReviewRequest is the moderator's full review form, ad and seller together.
type ReviewRequest struct {
	Ad      AdForm            `json:"ad"`
	Profile ProfileFormFields `json:"profile"`
}

type ProfileFormFields struct {
	DisplayName   string `json:"display_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	AltPhone      string `json:"alt_phone"`
	SellerType    string `json:"seller_type"`
	ShowPhone     bool   `json:"show_phone"`
	PhoneVerified bool   `json:"phone_verified"`
}

type RejectRequest struct {
	ReviewRequest
	Reasons      []string `json:"reasons"`
	Message      string   `json:"message"`
	DuplicateRef string   `json:"duplicate_ref"`
}

type RejectEditRequest struct {
	Message string `json:"message"`
}

type RejectReasonResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type BulkAdsRequest struct {
	IDs     []string `json:"ids"`
	Action  string   `json:"action"`
	Reasons []string `json:"reasons,omitempty"`
}

type BulkResultResponse struct {
	Matched int64 `json:"matched"`
}

type BulkUsersRequest struct {
	IDs    []string `json:"ids"`
	Action string   `json:"action"`
	Status string   `json:"status,omitempty"`
}

type UserListResponse struct {
	Users []ProfileReviewResponse `json:"users"`
	Total int                     `json:"total"`
	Page  int                     `json:"page"`
}

type EnqueueEmailRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type EmailResponse struct {
	ID        int64     `json:"id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

func NewEmailResponse(item model.EmailItem) EmailResponse {
	return EmailResponse{
		ID:        item.ID,
		Recipient: item.Recipient,
		Subject:   item.Subject,
		Body:      item.Body,
		State:     string(item.CurrentState),
		CreatedAt: item.CreatedAt,
	}
}

type EmailEventResponse struct {
	EventType string    `json:"event_type"`
	ActorID   string    `json:"actor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type EmailDetailResponse struct {
	Email  EmailResponse        `json:"email"`
	Events []EmailEventResponse `json:"events"`
}

type EmailListResponse struct {
	Emails []EmailResponse `json:"emails"`
	Total  int             `json:"total"`
}

type CategoryRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

type SubcategoryRequest struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	SortOrder  int    `json:"sort_order"`
	IsActive   bool   `json:"is_active"`
}

type AutoModSettingRequest struct {
	Enabled   bool `json:"enabled"`
	Threshold int  `json:"threshold"`
}

type AutoModSettingResponse struct {
	Key       string `json:"key"`
	Enabled   bool   `json:"enabled"`
	Threshold int    `json:"threshold"`
}

type PermissionRequest struct {
	Permission string `json:"permission"`
}

type PermissionListResponse struct {
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

type DashboardResponse struct {
	PendingGeneral    int64 `json:"pending_general"`
	PendingMember     int64 `json:"pending_member"`
	NeedsVerification int64 `json:"needs_verification"`
	PendingEdits      int64 `json:"pending_edits"`
	ApprovedAds       int64 `json:"approved_ads"`
	RejectedAds       int64 `json:"rejected_ads"`
	OpenReports       int64 `json:"open_reports"`
	EnqueuedEmails    int64 `json:"enqueued_emails"`
	NewUsersToday     int64 `json:"new_users_today"`
	AdsPostedToday    int64 `json:"ads_posted_today"`
}

type ReportResponse struct {
	ID         int64     `json:"id"`
	AdID       string    `json:"ad_id"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason"`
	Details    string    `json:"details"`
	IsResolved bool      `json:"is_resolved"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReportResponses(reports []model.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, ReportResponse{
			ID:         r.ID,
			AdID:       r.AdID.String(),
			ReporterID: r.ReporterID.String(),
			Reason:     r.Reason,
			Details:    r.Details,
			IsResolved: r.IsResolved,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
}

type AuditLogResponse struct {
	ID        int64          `json:"id"`
	AdID      string         `json:"ad_id"`
	ActorID   string         `json:"actor_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewAuditLogResponses(logs []model.AdAuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditLogResponse{
			ID:        l.ID,
			AdID:      l.AdID.String(),
			ActorID:   l.ActorID.String(),
			Action:    l.Action,
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
