package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardStats is the one-shot snapshot behind the admin landing page.
type DashboardStats struct {
	PendingGeneral    int `json:"pending_general"`
	PendingMember     int `json:"pending_member"`
	NeedsVerification int `json:"needs_verification"`
	PendingEdits      int `json:"pending_edits"`
	ApprovedAds       int `json:"approved_ads"`
	RejectedAds       int `json:"rejected_ads"`
	OpenReports       int `json:"open_reports"`
	EnqueuedEmails    int `json:"enqueued_emails"`
	NewUsersToday     int `json:"new_users_today"`
	AdsPostedToday    int `json:"ads_posted_today"`
}

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) Collect(ctx context.Context, now time.Time) (DashboardStats, error) {
	if r.pool == nil {
		return DashboardStats{}, fmt.Errorf("postgres pool is nil")
	}

	dayStart := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)

	var stats DashboardStats
	row := r.pool.QueryRow(ctx, `
SELECT
  (SELECT COUNT(*) FROM ads WHERE status = 'pending' AND first_time_poster = FALSE),
  (SELECT COUNT(*) FROM ads WHERE status = 'pending' AND first_time_poster = TRUE),
  (SELECT COUNT(*) FROM ads WHERE status = 'approved' AND needs_verification = TRUE),
  (SELECT COUNT(*) FROM ad_edit_requests WHERE status = 'pending'),
  (SELECT COUNT(*) FROM ads WHERE status = 'approved'),
  (SELECT COUNT(*) FROM ads WHERE status = 'rejected'),
  (SELECT COUNT(*) FROM ad_reports WHERE is_resolved = FALSE),
  (SELECT COUNT(*) FROM email_items WHERE current_state = 'enqueued'),
  (SELECT COUNT(*) FROM profiles WHERE created_at >= $1),
  (SELECT COUNT(*) FROM ads WHERE created_at >= $1)
`, dayStart)
	if err := row.Scan(
		&stats.PendingGeneral, &stats.PendingMember, &stats.NeedsVerification, &stats.PendingEdits,
		&stats.ApprovedAds, &stats.RejectedAds, &stats.OpenReports, &stats.EnqueuedEmails,
		&stats.NewUsersToday, &stats.AdsPostedToday,
	); err != nil {
		return DashboardStats{}, fmt.Errorf("collect dashboard stats: %w", err)
	}

	return stats, nil
}
