package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avelikov/flightdesk/api"
	"github.com/avelikov/flightdesk/config"
	"github.com/avelikov/flightdesk/internal/metrics"
	"github.com/avelikov/flightdesk/internal/service/booking"
	"github.com/avelikov/flightdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, reg *metrics.Registry, health map[string]api.Pinger) error {
	router := newRouter(cfg, flightSvc, bookingSvc, reg, health)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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

func newRouter(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, reg *metrics.Registry, health map[string]api.Pinger) *gin.Engine {
	upSince := time.Now()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestID())
	router.Use(api.Observe(reg))

	router.GET("/healthCheck", api.HealthCheckHandler(health, upSince))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	flightGroup := router.Group("/flights")
	api.NewFlightHandler(flightSvc).Register(flightGroup)

	passengerGroup := router.Group("/flights/:flight_id/passengers")
	api.NewBookingHandler(bookingSvc).Register(passengerGroup)

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs", func(c *gin.Context) {
			renderSwaggerUI(c, "/swagger/flightdesk.swagger.json")
		})
	}

	return router
}

func renderSwaggerUI(c *gin.Context, jsonURL string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
    <html>
    <head>
        <title>API Docs</title>
        <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css">
    </head>
    <body>
        <div id="swagger-ui"></div>
        <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
        <script>
            window.onload = function() {
                window.ui = SwaggerUIBundle({
                    url: "%s",
                    dom_id: '#swagger-ui'
                });
            };
        </script>
    </body>
    </html>`, jsonURL)

	c.Data(http.StatusOK, "text/html", []byte(html))
}
