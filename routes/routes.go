package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auth"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/bhajan"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/expense"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/gallery"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/mandapam"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/membership"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/notification"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/reports"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/schedule"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

// Services bundles the wired services so main can hand the notification
// service to the Kafka consumer.
type Services struct {
	Notification *notification.Service
}

// Setup wires repositories, services and handlers and registers every route.
func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB, uploader *utils.Uploader) *Services {
	// ========= Wiring =========
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	mandapamRepo := mandapam.NewRepository(db)
	mandapamSvc := mandapam.NewService(mandapamRepo, uploader, auditSvc)
	mandapamHandler := mandapam.NewHandler(mandapamSvc)

	membershipRepo := membership.NewRepository(db)
	membershipSvc := membership.NewService(membershipRepo, mandapamSvc, auditSvc)
	membershipHandler := membership.NewHandler(membershipSvc)

	scheduleRepo := schedule.NewRepository(db)
	scheduleSvc := schedule.NewService(scheduleRepo, auditSvc)
	scheduleHandler := schedule.NewHandler(scheduleSvc)

	galleryRepo := gallery.NewRepository(db)
	gallerySvc := gallery.NewService(galleryRepo, uploader, membershipSvc, auditSvc)
	galleryHandler := gallery.NewHandler(gallerySvc)

	expenseRepo := expense.NewRepository(db)
	expenseSvc := expense.NewService(expenseRepo, uploader)
	expenseHandler := expense.NewHandler(expenseSvc)

	bhajanRepo := bhajan.NewRepository(db)
	bhajanSvc := bhajan.NewService(bhajanRepo, uploader)
	bhajanHandler := bhajan.NewHandler(bhajanSvc)

	notifRepo := notification.NewRepository(db)
	notifSvc := notification.NewService(notifRepo)
	notifHandler := notification.NewHandler(notifSvc)

	reportsRepo := reports.NewRepository(db)
	reportsSvc := reports.NewService(reportsRepo, reports.NewExporter(), auditSvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	// ========= Health & docs =========
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())

	// ========= Auth =========
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/firebase-login", authHandler.LoginWithFirebase)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// ========= Public directory =========
	// Browsing mandapams, schedules, galleries and volunteer rosters needs
	// no account; visitors explore before asking to join.
	public := api.Group("/")
	{
		public.GET("/mandapams", mandapamHandler.List)
		public.GET("/mandapams/:id", mandapamHandler.Get)
		public.GET("/mandapams/:id/schedule/overview", scheduleHandler.Overview)
		public.GET("/mandapams/:id/schedule/:day", scheduleHandler.ListByDay)
		public.GET("/mandapams/:id/gallery", galleryHandler.List)
		public.GET("/mandapams/:id/volunteers", membershipHandler.ListVolunteers)
	}

	// ========= Authenticated =========
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/mandapams", mandapamHandler.Create)
		protected.GET("/mandapams/mine", mandapamHandler.Mine)

		protected.POST("/mandapams/:id/join-requests", membershipHandler.SubmitJoinRequest)
		protected.POST("/mandapams/:id/gallery", galleryHandler.Upload)
		protected.POST("/mandapams/:id/gallery/:imageID/like", galleryHandler.ToggleLike)
		protected.POST("/mandapams/:id/gallery/:imageID/comments", galleryHandler.AddComment)
		protected.DELETE("/mandapams/:id/gallery/comments/:commentID", galleryHandler.DeleteComment)
		protected.DELETE("/mandapams/:id/gallery/:imageID", galleryHandler.DeleteImage)

		expenseRoutes := protected.Group("/expenses")
		{
			expenseRoutes.POST("", expenseHandler.Add)
			expenseRoutes.GET("", expenseHandler.List)
			expenseRoutes.GET("/summary", expenseHandler.Summary)
			expenseRoutes.DELETE("/:expenseID", expenseHandler.Delete)
		}

		bhajanRoutes := protected.Group("/bhajans")
		{
			bhajanRoutes.POST("", bhajanHandler.Create)
			bhajanRoutes.GET("", bhajanHandler.ListMine)
			bhajanRoutes.PUT("/:bhajanID", bhajanHandler.Update)
			bhajanRoutes.DELETE("/:bhajanID", bhajanHandler.Delete)
		}

		notifRoutes := protected.Group("/notifications")
		{
			notifRoutes.GET("", notifHandler.List)
			notifRoutes.PATCH("/read-all", notifHandler.MarkAllRead)
			notifRoutes.PATCH("/:notificationID/read", notifHandler.MarkRead)
		}

		protected.GET("/reports/expenses", reportsHandler.ExportExpenses)
	}

	// ========= Admin-only =========
	admin := api.Group("/mandapams/:id")
	admin.Use(middleware.AuthMiddleware(cfg, authSvc))
	admin.Use(middleware.RequireAdmin())
	{
		admin.PUT("", mandapamHandler.Update)

		admin.GET("/join-requests", membershipHandler.ListJoinRequests)
		admin.PATCH("/join-requests/:requestID", membershipHandler.SetRequestStatus)
		admin.GET("/members", membershipHandler.ListMembers)
		admin.POST("/volunteers", membershipHandler.AssignRole)
		admin.DELETE("/volunteers/:userID", membershipHandler.RevokeAssignment)

		admin.POST("/schedule/:day/events", scheduleHandler.Create)
		admin.PUT("/schedule/events/:eventID", scheduleHandler.Update)
		admin.DELETE("/schedule/events/:eventID", scheduleHandler.Delete)

		admin.GET("/audit-logs", auditHandler.ListLogs)
		admin.GET("/reports/volunteers", reportsHandler.ExportVolunteers)
	}

	return &Services{Notification: notifSvc}
}
