package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bazarhat/backend/internal/domain/enums"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
	adssvc "github.com/bazarhat/backend/internal/services/ads"
	analyticsvc "github.com/bazarhat/backend/internal/services/analytics"
	automodsvc "github.com/bazarhat/backend/internal/services/automod"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
	catsvc "github.com/bazarhat/backend/internal/services/categories"
	emailsvc "github.com/bazarhat/backend/internal/services/emaillog"
	favsvc "github.com/bazarhat/backend/internal/services/favorites"
	locsvc "github.com/bazarhat/backend/internal/services/locations"
	mediasvc "github.com/bazarhat/backend/internal/services/media"
	msgsvc "github.com/bazarhat/backend/internal/services/messaging"
	modsvc "github.com/bazarhat/backend/internal/services/moderation"
	permsvc "github.com/bazarhat/backend/internal/services/perms"
	profilesvc "github.com/bazarhat/backend/internal/services/profiles"
	repsvc "github.com/bazarhat/backend/internal/services/reports"
	searchsvc "github.com/bazarhat/backend/internal/services/search"
	userssvc "github.com/bazarhat/backend/internal/services/users"
	"github.com/bazarhat/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	AdsService        *adssvc.Service
	AnalyticsService  *analyticsvc.Service
	AuthService       *authsvc.Service
	AutoModService    *automodsvc.Service
	CategoryService   *catsvc.Service
	EmailService      *emailsvc.Service
	FavoritesService  *favsvc.Service
	LocationsService  *locsvc.Service
	MediaService      *mediasvc.Service
	MessagingService  *msgsvc.Service
	ModerationService *modsvc.Service
	PermsService      *permsvc.Service
	ProfileService    *profilesvc.Service
	ReportsService    *repsvc.Service
	SearchService     *searchsvc.Service
	UserService       *userssvc.Service
	AdImageRepo       *pgrepo.AdImageRepo
	AuditRepo         *pgrepo.AuditRepo
	Logger            *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	meHandler := handlers.NewMeHandler(deps.ProfileService, deps.MediaService)
	adsHandler := handlers.NewAdsHandler(deps.AdsService, deps.MediaService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService, deps.AdImageRepo)
	categoriesHandler := handlers.NewCategoriesHandler(deps.CategoryService)
	locationsHandler := handlers.NewLocationsHandler(deps.LocationsService)
	favoritesHandler := handlers.NewFavoritesHandler(deps.FavoritesService)
	messagingHandler := handlers.NewMessagingHandler(deps.MessagingService)
	reportsHandler := handlers.NewReportsHandler(deps.ReportsService)

	moderationHandler := handlers.NewModerationHandler(deps.ModerationService, deps.AuditRepo)
	adminAdsHandler := handlers.NewAdminAdsHandler(deps.SearchService)
	adminUsersHandler := handlers.NewAdminUsersHandler(deps.UserService)
	adminEmailsHandler := handlers.NewAdminEmailsHandler(deps.EmailService)
	adminReportsHandler := handlers.NewAdminReportsHandler(deps.ReportsService)
	adminCategoriesHandler := handlers.NewAdminCategoriesHandler(deps.CategoryService)
	adminPermsHandler := handlers.NewAdminPermsHandler(deps.PermsService)
	adminSystemHandler := handlers.NewAdminSystemHandler(deps.AnalyticsService, deps.AutoModService)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	reviewAdsMW := RequirePermission(deps.PermsService, enums.PermReviewAds)
	manageUsersMW := RequirePermission(deps.PermsService, enums.PermManageUsers)
	manageCategoriesMW := RequirePermission(deps.PermsService, enums.PermManageCategories)
	manageEmailsMW := RequirePermission(deps.PermsService, enums.PermManageEmails)
	viewReportsMW := RequirePermission(deps.PermsService, enums.PermViewReports)
	manageAdminsMW := RequirePermission(deps.PermsService, enums.PermManageAdmins)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(authMW).Post("/logout", authHandler.Logout)
			r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
		})

		r.Get("/categories", categoriesHandler.List)
		r.Get("/categories/{id}/subcategories", categoriesHandler.Subcategories)
		r.Get("/locations", locationsHandler.List)
		r.Get("/locations/{division}/districts", locationsHandler.Districts)
		r.Get("/report-reasons", reportsHandler.Reasons)

		r.Get("/ads", adsHandler.Browse)
		r.Get("/ads/{ref}", adsHandler.Detail)

		r.Group(func(r chi.Router) {
			r.Use(authMW)

			r.Get("/me", meHandler.Get)
			r.Put("/me", meHandler.Update)
			r.Post("/me/avatar", meHandler.UploadAvatar)
			r.Get("/me/ads", adsHandler.MyAds)

			r.Post("/ads", adsHandler.Submit)
			r.Put("/ads/{id}", adsHandler.Edit)
			r.Post("/ads/{id}/sold", adsHandler.MarkSold)
			r.Post("/ads/{id}/deactivate", adsHandler.Deactivate)
			r.Post("/ads/{id}/reactivate", adsHandler.Reactivate)
			r.Post("/ads/{id}/report", reportsHandler.Create)
			r.Post("/media/ad-images", mediaHandler.UploadAdImages)

			r.Get("/favorites", favoritesHandler.List)
			r.Put("/favorites/{id}", favoritesHandler.Add)
			r.Delete("/favorites/{id}", favoritesHandler.Remove)
			r.Get("/searches", favoritesHandler.ListSearches)
			r.Post("/searches", favoritesHandler.SaveSearch)
			r.Delete("/searches/{id}", favoritesHandler.DeleteSearch)

			r.Get("/conversations", messagingHandler.List)
			r.Get("/conversations/unread", messagingHandler.Unread)
			r.Get("/conversations/{id}/messages", messagingHandler.Read)
			r.Post("/conversations/{id}/messages", messagingHandler.Send)
			r.Post("/ads/{id}/enquire", messagingHandler.Start)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authMW)

		r.With(reviewAdsMW).Get("/dashboard", adminSystemHandler.Dashboard)

		r.Route("/queues/{queue}", func(r chi.Router) {
			r.Use(reviewAdsMW)
			r.Get("/next", moderationHandler.Next)
			r.Get("/lookup", moderationHandler.Lookup)
		})
		r.With(reviewAdsMW).Get("/reject-reasons", moderationHandler.RejectReasons)
		r.Route("/ads", func(r chi.Router) {
			r.Use(reviewAdsMW)
			r.Get("/", adminAdsHandler.Search)
			r.Post("/bulk", adminAdsHandler.Bulk)
			r.Put("/{id}/review", moderationHandler.Save)
			r.Post("/{id}/approve", moderationHandler.Approve)
			r.Post("/{id}/reject", moderationHandler.Reject)
			r.Get("/{id}/audit", moderationHandler.AuditLog)
			r.Get("/{id}/reports", adminReportsHandler.ListForAd)
			r.Post("/{id}/reports/resolve", adminReportsHandler.ResolveForAd)
		})
		r.Route("/edit-requests", func(r chi.Router) {
			r.Use(reviewAdsMW)
			r.Post("/{id}/approve", moderationHandler.ApproveEdit)
			r.Post("/{id}/reject", moderationHandler.RejectEdit)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(manageUsersMW).Get("/", adminUsersHandler.Search)
			r.With(manageUsersMW).Get("/{id}", adminUsersHandler.Get)
			r.With(manageUsersMW).Post("/bulk", adminUsersHandler.Bulk)
			r.With(manageAdminsMW).Get("/{id}/permissions", adminPermsHandler.List)
			r.With(manageAdminsMW).Post("/{id}/permissions", adminPermsHandler.Grant)
			r.With(manageAdminsMW).Delete("/{id}/permissions", adminPermsHandler.Revoke)
			r.With(manageAdminsMW).Post("/{id}/promote", adminPermsHandler.Promote)
			r.With(manageAdminsMW).Post("/{id}/demote", adminPermsHandler.Demote)
		})

		r.Route("/emails", func(r chi.Router) {
			r.Use(manageEmailsMW)
			r.Get("/", adminEmailsHandler.List)
			r.Post("/", adminEmailsHandler.Enqueue)
			r.Get("/{id}", adminEmailsHandler.Get)
			r.Post("/{id}/approve", adminEmailsHandler.Approve)
			r.Post("/{id}/reject", adminEmailsHandler.Reject)
		})

		r.With(viewReportsMW).Get("/reports", adminReportsHandler.ListOpen)
		r.With(viewReportsMW).Post("/reports/{id}/resolve", adminReportsHandler.Resolve)

		r.Route("/categories", func(r chi.Router) {
			r.Use(manageCategoriesMW)
			r.Get("/", adminCategoriesHandler.List)
			r.Post("/", adminCategoriesHandler.Create)
			r.Put("/{id}", adminCategoriesHandler.Update)
			r.Get("/{id}/subcategories", adminCategoriesHandler.Subcategories)
			r.Post("/subcategories", adminCategoriesHandler.CreateSubcategory)
		})

		r.Route("/automod", func(r chi.Router) {
			r.Use(manageAdminsMW)
			r.Get("/", adminSystemHandler.AutoModList)
			r.Put("/{key}", adminSystemHandler.AutoModUpdate)
		})
	})
}
