/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mtahon/arbor-backend/app/api"
	"github.com/mtahon/arbor-backend/app/chain"
	"github.com/mtahon/arbor-backend/app/config"
	"github.com/mtahon/arbor-backend/app/db"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/app/middleware"
	"github.com/mtahon/arbor-backend/app/persistence"
	"github.com/mtahon/arbor-backend/app/services/document"
	"github.com/mtahon/arbor-backend/app/services/pipeline"
	"github.com/mtahon/arbor-backend/app/services/resolver"
	"github.com/mtahon/arbor-backend/app/services/trust"
	"github.com/mtahon/arbor-backend/app/tools"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

type options struct {
	scan     bool
	scanOnly bool
}

func configLogger(level string) {
	var err error
	var logLevel log.Level

	if logLevel, err = log.ParseLevel(level); err != nil {
		logLevel = log.InfoLevel
	}

	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000-07:00",
	})
}

func parseOptions() options {
	var opts options
	flag.BoolVar(&opts.scan, "scan", false, "resolve every registry organization once before consuming events")
	flag.BoolVar(&opts.scanOnly, "scan-only", false, "resolve every registry organization once and exit")
	flag.Parse()
	return opts
}

// newApiRouter wires the directory API, the health probes and the metrics endpoint behind the tracing and metrics
// middlewares
func newApiRouter(
	cfg *config.Config,
	organizations interfaces.OrganizationRepository,
	refresher interfaces.Refresher,
	stats interfaces.ConnectionStats,
) (http.Handler, error) {
	healthController, err := middleware.NewHealthController(cfg.Db, stats)
	if err != nil {
		return nil, err
	}

	router := api.NewRouter(
		api.NewOrganizationController(organizations, refresher),
		api.NewStatsController(stats),
		healthController,
		middleware.NewMetricsController(),
	)

	return middleware.TracingMiddleware(middleware.MetricsMiddleware(router)), nil
}

// scanOnce dials a single connection and resolves the whole registry with it
func scanOnce(ctx context.Context, dialer interfaces.Dialer, directory *pipeline.Pipeline) error {
	client, err := dialer.Dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	return directory.Scan(ctx, client)
}

func main() {
	opts := parseOptions()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	configLogger(cfg.Log.Level)

	dbClient := db.ConnectToDb(cfg.Db)
	if dbClient == nil {
		log.Fatal("Failed to connect to database")
	}
	if cfg.Db.Migrate {
		if err := db.Migrate(dbClient); err != nil {
			log.Fatal(err)
		}
	}

	checkpoints := persistence.NewCheckpointRepository(dbClient)
	organizations := persistence.NewOrganizationRepository(dbClient)

	httpClient := tools.NewHttpClient(cfg.Http)
	fetcher := document.NewDocumentFetcher(httpClient, cfg.Document)
	trustEngine := trust.NewTrustEngine(httpClient, cfg.Trust)
	newResolver := func(client interfaces.ChainClient) interfaces.OrganizationResolver {
		return resolver.NewResolver(client, fetcher, trustEngine, cfg.Resolver)
	}

	pipelineConfig := cfg.Pipeline
	pipelineConfig.ScanOnStartup = pipelineConfig.ScanOnStartup || opts.scan
	directory := pipeline.NewPipeline(checkpoints, organizations, newResolver, pipelineConfig)
	dialer := chain.NewDialer(cfg.Chain)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.scanOnly {
		if err := scanOnce(ctx, dialer, directory); err != nil {
			log.Fatalf("Registry scan failed: %s", err)
		}
		log.Info("Registry scan completed")
		return
	}

	guard := chain.NewConnectionGuard(dialer, directory.OnConnected, directory.OnDisconnected, cfg.Chain)
	router, err := newApiRouter(cfg, organizations, directory, guard)
	if err != nil {
		log.Fatal(err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		IdleTimeout:       cfg.Http.IdleTimeout,
		ReadHeaderTimeout: cfg.Http.ReadHeaderTimeout,
		ReadTimeout:       cfg.Http.ReadTimeout,
		WriteTimeout:      cfg.Http.WriteTimeout,
	}

	go func() {
		log.Infof("Listening on port %d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Error http listen and serve: %v", err)
			stop()
		}
	}()

	guardDone := make(chan struct{})
	go func() {
		defer close(guardDone)
		if err := guard.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("Connection guard stopped: %s", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("Shutting down, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down server: %s", err)
	}

	select {
	case <-guardDone:
	case <-shutdownCtx.Done():
		log.Warn("Timed out waiting for event consumption to stop")
	}

	log.Info("Server shutdown gracefully")
}
