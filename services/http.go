package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/poise-app/poise_api/services/handlers"
	"github.com/poise-app/poise_api/shared"
)

// HttpService owns the public API surface. Handlers return errors; the app
// error handler maps AppError to the response envelope so no handler writes
// status codes by hand.
type HttpService struct {
	context.DefaultService

	authSvc       *AuthMiddleware
	monitoringSvc *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	jwtSvc := svc.Service(JWT_SVC).(*JWTService)
	billingSvc := svc.Service(BILLING_SVC).(*BillingService)
	practiceSvc := svc.Service(PRACTICE_SVC).(*PracticeService)
	progressionSvc := svc.Service(PROGRESSION_SVC).(*ProgressionService)
	rewardSvc := svc.Service(REWARD_SVC).(*RewardService)
	badgeSvc := svc.Service(BADGE_SVC).(*BadgeService)
	challengeSvc := svc.Service(CHALLENGE_SVC).(*ChallengeService)

	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		JSONEncoder:  shared.JSONMarshal,
		JSONDecoder:  shared.JSONUnmarshal,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	app.Get("/ping", svc.ping)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	billingHandler := handlers.NewBillingHandler(billingSvc)
	app.Post("/webhooks/billing", billingHandler.HandleWebhook)

	if os.Getenv("APP_ENV") != "production" {
		authHandler := handlers.NewAuthHandler(jwtSvc)
		v1.Post("/auth/dev-token", authHandler.DevToken)
	}

	auth := svc.authSvc.RequiredAuth()

	practiceHandler := handlers.NewPracticeHandler(practiceSvc)
	practice := v1.Group("/practice", auth)
	practice.Get("/usage", practiceHandler.GetUsage)
	practice.Post("/submit", practiceHandler.SubmitPractice)
	practice.Get("/sessions", practiceHandler.GetSessions)
	practice.Post("/sessions/:id/favorite", practiceHandler.FavoriteSession)

	progressionHandler := handlers.NewProgressionHandler(progressionSvc)
	progress := v1.Group("/progress", auth)
	progress.Get("/", progressionHandler.GetProgress)
	progress.Get("/streak", progressionHandler.GetStreakStatus)
	progress.Post("/gift", progressionHandler.RecordGiftSent)

	rewardHandler := handlers.NewRewardHandler(rewardSvc)
	rewards := v1.Group("/rewards", auth)
	rewards.Get("/daily", rewardHandler.GetLoginRewardStatus)
	rewards.Post("/daily/claim", rewardHandler.ClaimDailyReward)

	badgeHandler := handlers.NewBadgeHandler(badgeSvc)
	v1.Get("/badges", auth, badgeHandler.GetBadgeCatalog)

	challengeHandler := handlers.NewChallengeHandler(challengeSvc)
	challenges := v1.Group("/challenges", auth)
	challenges.Get("/weekly", challengeHandler.GetWeeklyChallenges)
	challenges.Post("/weekly/:id/claim", challengeHandler.ClaimChallengeReward)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, fiber.StatusNotFound, "Not Found", nil)
	})

	svc.server = app

	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	return shared.ResponseInternalError(c, err)
}
