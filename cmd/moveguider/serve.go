package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/cli/browser"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/moveguider/internal/api/http"
	"github.com/i474232898/moveguider/internal/clock"
	"github.com/i474232898/moveguider/internal/scheduler"
)

func serveCmd() *cobra.Command {
	var (
		open         bool
		city1, city2 string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(open, city1, city2)
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "open the dashboard in a browser once the server is up")
	cmd.Flags().StringVar(&city1, "city1", "Phoenix", "first city shown by --open")
	cmd.Flags().StringVar(&city2, "city2", "London", "second city shown by --open")
	return cmd
}

func serve(open bool, city1, city2 string) error {
	service, cache, err := newService()
	if err != nil {
		return err
	}
	profiles := openProfiles()
	log.Printf("INFO: forecast cache keeps series for %s, profiles in %s", cache.TTL(), profiles.Path())

	// Scheduler that keeps watched cities warm in the cache.
	sched := scheduler.New(cfg.WatchCities, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "moveguider",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "ok",
			"service":      "moveguider",
			"cachedSeries": cache.Len(),
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Comparer: service,
		Profiles: profiles,
		Clock:    clock.SystemClock{},
		Home:     cfg.HomeZone,
		Policy:   cfg.MidnightPolicy,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s (home zone %s, midnight policy %s)", cfg.Port, cfg.HomeZone, cfg.MidnightPolicy)

	if open {
		q := url.Values{"city1": {city1}, "city2": {city2}}
		target := fmt.Sprintf("http://localhost:%s/dashboard?%s", cfg.Port, q.Encode())
		if err := browser.OpenURL(target); err != nil {
			log.Printf("INFO: could not open browser, visit %s", target)
		}
	}

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	return nil
}
