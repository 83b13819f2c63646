package services

import (
	"os"

	"github.com/alphabatem/common/context"

	"github.com/poise-app/poise_api/dto"
	"github.com/poise-app/poise_api/services/repositories"
	"github.com/poise-app/poise_api/shared"
)

// UsageService enforces the per-tier daily practice cap. Usage is counted by
// calendar day in server-local time against the session log itself, so the
// gate and the history can never disagree.
type UsageService struct {
	context.DefaultService

	sqlSvc     *PostgresService
	billingSvc *BillingService

	practiceRepo *repositories.PracticeRepository
	clock        shared.Clock

	production bool
}

const USAGE_SVC = "usage_svc"

// unlimited is the sentinel for tiers without a daily cap.
const unlimited = -1

const freeDailyLimit = 3

func (svc UsageService) Id() string {
	return USAGE_SVC
}

func (svc *UsageService) Configure(ctx *context.Context) error {
	svc.production = os.Getenv("APP_ENV") == "production"
	svc.clock = shared.SystemClock{}
	return svc.DefaultService.Configure(ctx)
}

func (svc *UsageService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.billingSvc = svc.Service(BILLING_SVC).(*BillingService)
	svc.practiceRepo = repositories.NewPracticeRepository(svc.sqlSvc.Db())
	return nil
}

// DailyLimitFor returns the cap for a tier. The free cap only binds in
// production so development and staging stay unthrottled.
func (svc *UsageService) DailyLimitFor(tier string) int {
	if tier == shared.TierFree && svc.production {
		return freeDailyLimit
	}
	return unlimited
}

// GetDailyUsage reports today's consumption against the user's cap.
func (svc *UsageService) GetDailyUsage(userID string) (*dto.UsageCheckResponse, error) {
	tier := svc.billingSvc.ResolveTier(userID)
	limit := svc.DailyLimitFor(tier)

	used, err := svc.practiceRepo.CountSessionsSince(userID, shared.DateOf(svc.clock.Now()))
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.UsageCheckResponse{
		Tier:      tier,
		Limit:     limit,
		UsedToday: int(used),
	}

	if limit == unlimited {
		resp.Allowed = true
		resp.Remaining = unlimited
		return resp, nil
	}

	resp.Remaining = limit - int(used)
	if resp.Remaining < 0 {
		resp.Remaining = 0
	}
	resp.Allowed = int(used) < limit
	return resp, nil
}

// CheckCanSubmit gates a submission before any scoring work happens. A capped
// user gets a 402 carrying the usage breakdown for the upgrade prompt.
func (svc *UsageService) CheckCanSubmit(userID string) (*dto.UsageCheckResponse, error) {
	usage, err := svc.GetDailyUsage(userID)
	if err != nil {
		return nil, err
	}
	if !usage.Allowed {
		RecordUsageRejection(usage.Tier)
		return nil, shared.NewPaymentRequiredError("Daily practice limit reached", usage)
	}
	return usage, nil
}
