package providers

import (
	"github.com/samber/do/v2"

	"github.com/clarityos/clarity-server/internal/config"
	"github.com/clarityos/clarity-server/internal/logger"
	"github.com/clarityos/clarity-server/internal/ratelimit"
	"github.com/clarityos/clarity-server/internal/service"
	"github.com/clarityos/clarity-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideDiaryService provides the diary entry service.
func ProvideDiaryService(i do.Injector) (*service.DiaryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDiaryService(storeHandle.Store, v, log.Logger), nil
}

// ProvideWellnessService provides the wellness check-in service.
func ProvideWellnessService(i do.Injector) (*service.WellnessService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWellnessService(storeHandle.Store, v, log.Logger), nil
}

// ProvideAnalyticsService provides the diary analytics service.
func ProvideAnalyticsService(i do.Injector) (*service.AnalyticsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAnalyticsService(storeHandle.Store, log.Logger), nil
}

// ProvideMoneyService provides the money manager service.
func ProvideMoneyService(i do.Injector) (*service.MoneyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMoneyService(storeHandle.Store, v, log.Logger), nil
}

// RateLimiterHandle wraps the rate limiter with shutdown capability.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the per-client API rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return &RateLimiterHandle{KeyedRateLimiter: ratelimit.New(cfg.Limiter.RPS, cfg.Limiter.Burst)}, nil
}
