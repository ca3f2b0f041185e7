package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/config"
	"github.com/progprogect/NutritionBot/controllers"
	"github.com/progprogect/NutritionBot/middlewares"
	"github.com/progprogect/NutritionBot/services"
	"github.com/progprogect/NutritionBot/utils"
)

func SetupRouter(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *gin.Engine {
	loc := cfg.Location

	users := services.NewUserService(db)
	entries := services.NewEntryService(db)
	agg := services.NewAggregateService(db, loc)
	corrections := services.NewCorrectionService(db)
	goals := services.NewGoalService(db, agg, loc)
	trends := services.NewTrendService(agg, loc)
	coach := services.NewCoachService(db)
	metrics := services.NewMetricsService(db, loc)
	sessions := services.NewSessionStore()

	openai := services.NewOpenAIService(cfg)
	transcoder := utils.NewFFmpegTranscoder()
	ingest := services.NewIngestService(users, entries, openai, transcoder, cfg.ExtractTimeout, loc, log)

	ingestCtl := controllers.NewIngestController(ingest, sessions, corrections, goals, coach, users, metrics)
	dayCtl := controllers.NewDayController(users, agg, trends, goals, metrics, loc)
	entryCtl := controllers.NewEntryController(users, entries, corrections, sessions)
	goalCtl := controllers.NewGoalController(users, goals, sessions)
	coachCtl := controllers.NewCoachController(coach)
	adminCtl := controllers.NewAdminController(metrics, loc)

	limiter := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Chat-facing routes, identified by the gateway header.
	bot := r.Group("/bot")
	bot.Use(middlewares.UserIdentity())
	{
		ingested := bot.Group("")
		ingested.Use(limiter.Middleware())
		{
			ingested.POST("/text", ingestCtl.PostText)
			ingested.POST("/photo", ingestCtl.PostPhoto)
			ingested.POST("/voice", ingestCtl.PostVoice)
		}

		bot.POST("/coach", ingestCtl.StartCoachIntake)
		bot.POST("/cancel", ingestCtl.CancelSession)

		bot.GET("/day", dayCtl.GetDay)
		bot.GET("/week", dayCtl.GetWeek)
		bot.GET("/month", dayCtl.GetMonth)

		bot.GET("/entries/:id", entryCtl.GetEntry)
		bot.POST("/entries/:id/slot", entryCtl.SetSlot)
		bot.POST("/entries/:id/yesterday", entryCtl.ShiftYesterday)
		bot.DELETE("/entries/:id", entryCtl.DeleteEntry)
		bot.GET("/entries/:id/items", entryCtl.ListItems)
		bot.POST("/items/:itemID/grams", entryCtl.SetItemGrams)
		bot.POST("/items/:itemID/edit", entryCtl.StartItemEdit)

		bot.GET("/goals", goalCtl.GetGoals)
		bot.PUT("/goals/:nutrient", goalCtl.SetGoal)
		bot.POST("/goals/:nutrient/edit", goalCtl.StartGoalEdit)
		bot.DELETE("/goals/:nutrient", goalCtl.RemoveGoal)
		bot.DELETE("/goals", goalCtl.ResetGoals)
	}

	// Operator routes, JWT with a role claim.
	coachAPI := r.Group("/coach")
	coachAPI.Use(middlewares.OperatorAuth(utils.RoleCoach, utils.RoleAdmin))
	{
		coachAPI.GET("/requests", coachCtl.GetInbox)
		coachAPI.GET("/requests/:id", coachCtl.GetRequest)
		coachAPI.POST("/requests/:id/status", coachCtl.SetStatus)
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.OperatorAuth(utils.RoleAdmin))
	{
		admin.GET("/stats", adminCtl.GetStats)
	}

	return r
}
