package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/clarityos/clarity-server/internal/api"
	"github.com/clarityos/clarity-server/internal/config"
	"github.com/clarityos/clarity-server/internal/logger"
	"github.com/clarityos/clarity-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	diaryService := do.MustInvoke[*service.DiaryService](i)
	wellnessService := do.MustInvoke[*service.WellnessService](i)
	analyticsService := do.MustInvoke[*service.AnalyticsService](i)
	moneyService := do.MustInvoke[*service.MoneyService](i)
	backupHandle := do.MustInvoke[*BackupServiceHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)

	handler := api.NewServer(
		storeHandle.Store,
		diaryService,
		wellnessService,
		analyticsService,
		moneyService,
		backupHandle.Service,
		limiterHandle.KeyedRateLimiter,
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "name", cfg.Server.Name)

	return &HTTPServerHandle{Server: srv}, nil
}
