package main

import (
	"log"

	"go-confession-board/internal/api"
	"go-confession-board/internal/localization"
	"go-confession-board/internal/middleware"
	"go-confession-board/internal/repository"
	"go-confession-board/internal/service"
	"go-confession-board/pkg/config"
	"go-confession-board/pkg/cron"
	"go-confession-board/pkg/db"
	"go-confession-board/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, real deployments set the environment directly.
	_ = godotenv.Load()

	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := db.InitDB(); err != nil {
		logger.L.Fatal("Failed to initialize database", zap.Error(err))
	}

	loc, err := localization.NewLocalizer(config.GlobalConfig.Locale.Dir)
	if err != nil {
		logger.L.Fatal("Failed to load message catalogs", zap.Error(err))
	}

	fileService, err := service.NewFileService()
	if err != nil {
		logger.L.Fatal("Failed to prepare upload directories", zap.Error(err))
	}

	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	groupRepo := repository.NewGroupRepository()
	memberRepo := repository.NewGroupMemberRepository()
	invitationRepo := repository.NewInvitationRepository()
	ruleRepo := repository.NewRuleRepository()
	postRepo := repository.NewPostRepository()
	confessionRepo := repository.NewConfessionRepository()
	commentRepo := repository.NewCommentRepository()

	authService := service.NewAuthService(userRepo, profileRepo)
	groupService := service.NewGroupService(groupRepo, memberRepo, ruleRepo, profileRepo)
	inviteService := service.NewInviteService(invitationRepo, memberRepo, groupRepo)
	postService := service.NewPostService(postRepo, confessionRepo, commentRepo, memberRepo, ruleRepo, profileRepo, fileService)
	billingService := service.NewBillingService(confessionRepo, profileRepo, userRepo)
	profileService := service.NewProfileService(profileRepo, userRepo, fileService)

	authHandler := api.NewAuthHandler(authService, loc)
	groupHandler := api.NewGroupHandler(groupService, loc)
	inviteHandler := api.NewInviteHandler(inviteService, loc)
	postHandler := api.NewPostHandler(postService, loc)
	billingHandler := api.NewBillingHandler(billingService, loc)
	profileHandler := api.NewProfileHandler(profileService, loc)

	scheduler := cron.Start(inviteService)
	defer scheduler.Stop()

	r := gin.New()
	r.Use(middleware.GinZapLogger(), gin.Recovery())

	// Uploaded images are served straight from disk.
	r.Static(config.GlobalConfig.Upload.PublicPath, fileService.BaseDir())

	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	// Invite preview stays public so the landing page works before login.
	r.GET("/api/invites/:code", inviteHandler.GetInvitation)

	protected := r.Group("/api", middleware.AuthMiddleware())
	{
		protected.POST("/invites/:code/accept", inviteHandler.AcceptInvitation)

		protected.POST("/groups", groupHandler.CreateGroup)
		protected.GET("/groups", groupHandler.GetUserGroups)
		protected.POST("/groups/join", groupHandler.JoinGroup)
		protected.GET("/groups/:group_id", groupHandler.GetGroupDetail)
		protected.DELETE("/groups/:group_id/members/:user_id", groupHandler.RemoveMember)
		protected.POST("/groups/:group_id/rules", groupHandler.CreateRule)
		protected.DELETE("/groups/:group_id/rules/:rule_id", groupHandler.DeleteRule)
		protected.POST("/groups/:group_id/invites", inviteHandler.CreateInvitation)
		protected.GET("/groups/:group_id/posts", postHandler.ListGroupPosts)

		protected.POST("/posts", postHandler.CreatePost)
		protected.GET("/posts", postHandler.ListPosts)
		protected.PUT("/posts/:post_id", postHandler.UpdatePost)
		protected.DELETE("/posts/:post_id", postHandler.DeletePost)
		protected.POST("/posts/:post_id/confess", postHandler.Confess)
		protected.GET("/posts/:post_id/comments", postHandler.ListComments)
		protected.POST("/posts/:post_id/comments", postHandler.AddComment)

		protected.GET("/billing/summary", billingHandler.GetMonthlySummary)
		protected.GET("/billing/history", billingHandler.GetHistory)
		protected.GET("/billing/invoice/pdf", billingHandler.DownloadInvoice)

		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.POST("/profile/avatar", profileHandler.UploadAvatar)
	}

	logger.L.Info("Server starting", zap.String("addr", config.GlobalConfig.Server.Addr))
	if err := r.Run(config.GlobalConfig.Server.Addr); err != nil {
		logger.L.Fatal("Failed to start server", zap.Error(err))
	}
}
