package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/api"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/config"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/service/schedule"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/service/seats"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, seatSvc seats.SeatAllocationUseCase, scheduleSvc schedule.ScheduleUseCase) error {
	router := gin.Default()

	v1 := router.Group("/api/v1")
	api.NewSeatHandler(seatSvc).Register(v1)
	api.NewScheduleHandler(scheduleSvc).Register(v1)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
