package router

import (
	"log"
	"os"
	"time"

	"github.com/classpoint/classpoint/database"
	"github.com/classpoint/classpoint/handlers"
	admin_handlers "github.com/classpoint/classpoint/handlers/admin"
	announcement_handlers "github.com/classpoint/classpoint/handlers/announcement"
	assignment_handlers "github.com/classpoint/classpoint/handlers/assignment"
	auth_handlers "github.com/classpoint/classpoint/handlers/auth"
	course_handlers "github.com/classpoint/classpoint/handlers/course"
	discussion_handlers "github.com/classpoint/classpoint/handlers/discussion"
	message_handlers "github.com/classpoint/classpoint/handlers/message"
	notification_handlers "github.com/classpoint/classpoint/handlers/notification"
	upload_handlers "github.com/classpoint/classpoint/handlers/upload"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/services/spaces"
	"github.com/classpoint/classpoint/utils/auth"
	"github.com/classpoint/classpoint/utils/cache"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "classpoint-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis backs brute force protection on login. The API still runs
	// without it.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	identityService := services.NewIdentityService(db)
	courseService := services.NewCourseService(db)
	assignmentService := services.NewAssignmentService(db)
	discussionService := services.NewDiscussionService(db)
	messageService := services.NewMessageService(db)
	notificationService := services.NewNotificationService(db)
	announcementService := services.NewAnnouncementService(db)

	// Object storage is optional; uploads return 503 when unconfigured.
	var spacesClient *spaces.Client
	if os.Getenv("SPACES_ACCESS_KEY") != "" {
		spacesClient, err = spaces.NewClient(spaces.Config{
			AccessKey: os.Getenv("SPACES_ACCESS_KEY"),
			SecretKey: os.Getenv("SPACES_SECRET_KEY"),
			Bucket:    os.Getenv("SPACES_BUCKET"),
			Region:    os.Getenv("SPACES_REGION"),
			Endpoint:  os.Getenv("SPACES_ENDPOINT"),
			CDNURL:    os.Getenv("SPACES_CDN_URL"),
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize object storage: %v. Uploads will be disabled.", err)
		}
	}

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, identityService, bruteForceProtection)
	adminHandler := admin_handlers.NewAdminHandler(identityService)
	courseHandler := course_handlers.NewCourseHandler(courseService)
	assignmentHandler := assignment_handlers.NewAssignmentHandler(assignmentService)
	discussionHandler := discussion_handlers.NewDiscussionHandler(discussionService)
	messageHandler := message_handlers.NewMessageHandler(messageService)
	notificationHandler := notification_handlers.NewNotificationHandler(notificationService)
	announcementHandler := announcement_handlers.NewAnnouncementHandler(announcementService)
	uploadHandler := upload_handlers.NewUploadHandler(spacesClient)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Post("/", authHandler.CreateProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Course routes. Listings degrade gracefully for anonymous callers.
	courses := api.Group("/courses")
	courses.Get("/", authMiddleware.Optional(), courseHandler.GetCourses)
	courses.Get("/available", authMiddleware.Optional(), courseHandler.GetAvailableCourses)
	courses.Get("/:id", authMiddleware.Required(), courseHandler.GetCourse)
	courses.Post("/", authMiddleware.Required(), courseHandler.CreateCourse)
	courses.Post("/:id/enroll", authMiddleware.Required(), courseHandler.Enroll)
	courses.Get("/:id/assignments", authMiddleware.Required(), assignmentHandler.GetAssignments)
	courses.Get("/:id/discussions", authMiddleware.Required(), discussionHandler.GetDiscussions)
	courses.Get("/:id/announcements", authMiddleware.Required(), announcementHandler.GetAnnouncements)

	// Assignment routes
	assignments := api.Group("/assignments", authMiddleware.Required())
	assignments.Post("/", assignmentHandler.CreateAssignment)
	assignments.Post("/:id/publish", assignmentHandler.PublishAssignment)
	assignments.Post("/:id/submissions", assignmentHandler.SubmitAssignment)
	assignments.Get("/:id/submissions", assignmentHandler.GetSubmissions)

	// Submission grading
	submissions := api.Group("/submissions", authMiddleware.Required())
	submissions.Post("/:id/grade", assignmentHandler.GradeSubmission)

	// Discussion routes
	discussions := api.Group("/discussions", authMiddleware.Required())
	discussions.Post("/", discussionHandler.CreateDiscussion)
	discussions.Post("/:id/posts", discussionHandler.CreatePost)
	discussions.Get("/:id/posts", discussionHandler.GetPosts)

	// Messaging routes
	messages := api.Group("/messages", authMiddleware.Required())
	messages.Post("/", messageHandler.SendMessage)
	messages.Get("/", messageHandler.GetThreads)
	messages.Get("/threads/:thread_id", messageHandler.GetThread)
	messages.Post("/:id/read", messageHandler.MarkAsRead)

	// Notification routes. The unread count degrades to zero for
	// anonymous callers.
	notifications := api.Group("/notifications")
	notifications.Get("/unread-count", authMiddleware.Optional(), notificationHandler.GetUnreadCount)
	notifications.Get("/", authMiddleware.Required(), notificationHandler.GetNotifications)
	notifications.Post("/read-all", authMiddleware.Required(), notificationHandler.MarkAllAsRead)
	notifications.Post("/:id/read", authMiddleware.Required(), notificationHandler.MarkAsRead)

	// Announcement routes
	announcements := api.Group("/announcements", authMiddleware.Required())
	announcements.Post("/", announcementHandler.CreateAnnouncement)

	// Uploads
	uploads := api.Group("/uploads", authMiddleware.Required())
	uploads.Post("/", uploadHandler.UploadFile)
	uploads.Get("/*", uploadHandler.GetFile)

	// Admin routes
	adminGroup := api.Group("/admin", authMiddleware.Required())
	adminGroup.Get("/users", adminHandler.ListUsers)
}
