package enums

// Permission is a named admin capability checked before gating a page or action.
type Permission string

const (
	PermReviewAds        Permission = "review_ads"
	PermManageUsers      Permission = "manage_users"
	PermManageCategories Permission = "manage_categories"
	PermManageEmails     Permission = "manage_emails"
	PermViewReports      Permission = "view_reports"
	PermManageAdmins     Permission = "manage_admins"
)
