package main

import (
	"github.com/poise-app/poise_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.JWTService{},
		&services.AuthMiddleware{},
		&services.MonitoringService{},

		&services.BillingService{},
		&services.UsageService{},
		&services.BadgeService{},
		&services.ProgressionService{},
		&services.ChallengeService{},
		&services.RewardService{},
		&services.PracticeService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
