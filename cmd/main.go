package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quagsire/config"
	"github.com/lshigami/Quagsire/database"
	_ "github.com/lshigami/Quagsire/docs" // Swagger docs
	adminctrl "github.com/lshigami/Quagsire/internal/controller/admin"
	userctrl "github.com/lshigami/Quagsire/internal/controller/user"
	"github.com/lshigami/Quagsire/internal/logger"
	"github.com/lshigami/Quagsire/internal/model"
	"github.com/lshigami/Quagsire/internal/repository"
	"github.com/lshigami/Quagsire/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Slang Quiz API
// @version 1.0
// @description Slang-learning multiple-choice quiz service: per-user quiz sessions, non-repeating questions with generated distractors, time-sensitive scoring and tiered daily limits.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // *gorm.DB
			database.NewRedis,    // *goredis.Client
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewTermRepository,
			repository.NewSessionStore,
			repository.NewDailyCounterRepository,
			repository.NewAttemptRepository,
			repository.NewUserRepository,
		),

		// Services layer
		fx.Provide(
			service.NewDistractorService,
			func(cfg *config.Config) service.ScoringService {
				return service.NewScoringService(cfg.Quiz.PointsPerCorrect, cfg.Quiz.QuestionTimeLimitSeconds)
			},
			service.NewQuizService,
			service.NewAdminTermService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewQuizController,
			adminctrl.NewAdminTermController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *userctrl.QuizController,
	adminTermCtrl *adminctrl.AdminTermController,
) {
	apiGroup := router.Group("/api/v1")
	{
		quizGroup := apiGroup.Group("/quiz")
		quizGroup.GET("/eligibility", quizCtrl.CheckEligibility)
		quizGroup.GET("/question", quizCtrl.GetNextQuestion)
		quizGroup.POST("/answer", quizCtrl.SubmitAnswer)
		quizGroup.POST("/sessions/:session_id/end", quizCtrl.EndSession)
		quizGroup.GET("/sessions/:session_id/progress", quizCtrl.GetSessionProgress)
	}

	adminGroup := router.Group("/api/v1/admin")
	{
		termsGroup := adminGroup.Group("/terms")
		termsGroup.POST("", adminTermCtrl.CreateTerm)
		termsGroup.GET("", adminTermCtrl.ListTerms)
		termsGroup.GET("/:name", adminTermCtrl.GetTerm)
		termsGroup.DELETE("/:name", adminTermCtrl.DeleteTerm)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Slang Quiz API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.SlangTerm{},
		&model.User{},
		&model.QuizAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
