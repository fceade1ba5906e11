package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentlife/taskboard/internal/config"
	"github.com/studentlife/taskboard/internal/constants"
	"github.com/studentlife/taskboard/internal/database"
	"github.com/studentlife/taskboard/internal/handlers"
	"github.com/studentlife/taskboard/internal/logging"
	"github.com/studentlife/taskboard/internal/middleware"
	"github.com/studentlife/taskboard/internal/repository"
	"github.com/studentlife/taskboard/internal/services"
	"github.com/studentlife/taskboard/internal/store"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.GinMode)

	gin.SetMode(cfg.GinMode)

	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash seed admin password")
	}
	seed := store.Seed{
		AdminEmail:        cfg.SeedAdminEmail,
		AdminFullName:     "Admin User",
		AdminPasswordHash: string(adminHash),
		DepartmentName:    "General",
	}

	var (
		userRepo repository.UserRepository
		deptRepo repository.DepartmentRepository
		taskRepo repository.TaskRepository
		msgRepo  repository.MessageRepository
	)

	if cfg.StorageDriver == "local" {
		st := store.Open(cfg.LocalDBPath, seed, log)
		userRepo = repository.NewLocalUserRepository(st)
		deptRepo = repository.NewLocalDepartmentRepository(st)
		taskRepo = repository.NewLocalTaskRepository(st)
		msgRepo = repository.NewLocalMessageRepository(st)
		log.Info().Str("path", cfg.LocalDBPath).Msg("using local storage backend")
	} else {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.EnsureSeed(db, seed); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
		userRepo = repository.NewGormUserRepository(db)
		deptRepo = repository.NewGormDepartmentRepository(db)
		taskRepo = repository.NewGormTaskRepository(db)
		msgRepo = repository.NewGormMessageRepository(db)
		log.Info().Str("driver", cfg.StorageDriver).Msg("using relational storage backend")
	}

	identityService := services.NewIdentityService(userRepo)
	directoryService := services.NewDirectoryService(userRepo, deptRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, deptRepo)
	messageService := services.NewMessageService(msgRepo, userRepo)

	authHandler := handlers.NewAuthHandler(identityService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)
	taskHandler := handlers.NewTaskHandler(taskService)
	messageHandler := handlers.NewMessageHandler(messageService)

	r := gin.Default()

	if len(cfg.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
		r.Use(cors.New(corsCfg))
	} else {
		r.Use(cors.Default())
	}

	var sessionStore sessions.Store
	if cfg.RedisHost != "" {
		sessionStore, err = redisStore.NewStore(
			10,
			"tcp",
			cfg.RedisHost+":"+cfg.RedisPort,
			"",
			"",
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create redis session store")
		}
	} else {
		sessionStore = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskboard API is running",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(identityService), authHandler.Me)
			auth.PUT("/email", middleware.RequireAuth(identityService), authHandler.UpdateEmail)
			auth.PUT("/password", middleware.RequireAuth(identityService), authHandler.UpdatePassword)
			auth.PATCH("/profile", middleware.RequireAuth(identityService), authHandler.UpdateProfile)
		}

		departments := api.Group("/departments")
		departments.Use(middleware.RequireAuth(identityService))
		{
			departments.GET("", directoryHandler.ListDepartments)
			departments.POST("", middleware.RequireAdmin(), directoryHandler.CreateDepartment)
		}

		staff := api.Group("/staff")
		staff.Use(middleware.RequireAuth(identityService))
		{
			staff.GET("", directoryHandler.ListStaff)
			staff.GET("/assignable", directoryHandler.ListAssignable)
			staff.POST("", middleware.RequireAdmin(), directoryHandler.CreateStaff)
			staff.PATCH("/:id/role", middleware.RequireAdmin(), directoryHandler.UpdateStaffRole)
			staff.DELETE("/:id", middleware.RequireAdmin(), directoryHandler.DeleteStaff)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(identityService))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/my", taskHandler.ListMyTasks)
			tasks.GET("/stats", taskHandler.Stats)
			tasks.GET("/export.csv", taskHandler.ExportCSV)
			tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
			tasks.PATCH("/:id", middleware.RequireAdmin(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
			tasks.POST("/:id/assign", middleware.RequireAdmin(), taskHandler.AssignTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
		}

		messages := api.Group("/messages")
		messages.Use(middleware.RequireAuth(identityService))
		{
			messages.POST("", messageHandler.Send)
			messages.GET("/with/:userID", messageHandler.Conversation)
			messages.GET("/admin/conversations", middleware.RequireAdmin(), messageHandler.AdminConversations)
		}
	}

	log.Info().Str("addr", cfg.Addr).Msg("server starting")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
