// Package di provides dependency injection configuration for the ClarityOS server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/clarityos/clarity-server/internal/config"
	"github.com/clarityos/clarity-server/internal/di/providers"
	"github.com/clarityos/clarity-server/internal/logger"
	"github.com/clarityos/clarity-server/internal/service"
	"github.com/clarityos/clarity-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideDiaryService)
	do.Provide(injector, providers.ProvideWellnessService)
	do.Provide(injector, providers.ProvideAnalyticsService)
	do.Provide(injector, providers.ProvideMoneyService)
	do.Provide(injector, providers.ProvideRateLimiter)

	// Workers
	do.Provide(injector, providers.ProvideBackupService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.DiaryService](injector)
	_ = do.MustInvoke[*service.WellnessService](injector)
	_ = do.MustInvoke[*service.AnalyticsService](injector)
	_ = do.MustInvoke[*service.MoneyService](injector)
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)

	// Workers
	_ = do.MustInvoke[*providers.BackupServiceHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
