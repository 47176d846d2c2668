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

package middleware

import (
	"context"
	"time"

	"github.com/hellofresh/health-go/v4"
	"github.com/hellofresh/health-go/v4/checks/postgres"
	"github.com/mtahon/arbor-backend/app/api"
	"github.com/mtahon/arbor-backend/app/config"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
)

const (
	checkTimeout  = 10 * time.Second
	livenessPath  = "/health/liveness"
	readinessPath = "/health/readiness"
)

// healthController holds data used to response to health probes
type healthController struct {
	livenessHealth  *health.Health
	readinessHealth *health.Health
}

// NewHealthController creates a new HealthController object. Readiness requires both the database and a live chain
// connection
func NewHealthController(db config.Db, stats interfaces.ConnectionStats) (api.Router, error) {
	livenessHealth, err := health.New()
	if err != nil {
		return nil, err
	}

	readinessChecks := []health.Config{
		{
			Name:      "postgresql",
			Timeout:   checkTimeout,
			SkipOnErr: false,
			Check:     postgres.New(postgres.Config{DSN: db.GetDsn()}),
		},
		{
			Name:      "blockchain",
			Timeout:   checkTimeout,
			SkipOnErr: false,
			Check:     checkChainConnection(stats),
		},
	}
	readinessHealth, err := health.New(health.WithChecks(readinessChecks...))
	if err != nil {
		return nil, err
	}

	return &healthController{
		livenessHealth:  livenessHealth,
		readinessHealth: readinessHealth,
	}, nil
}

// Routes returns the Health controller routes
func (c *healthController) Routes() api.Routes {
	return api.Routes{
		{
			Name:        "liveness",
			Method:      "GET",
			Pattern:     livenessPath,
			HandlerFunc: c.livenessHealth.HandlerFunc,
		},
		{
			Name:        "readiness",
			Method:      "GET",
			Pattern:     readinessPath,
			HandlerFunc: c.readinessHealth.HandlerFunc,
		},
	}
}

func checkChainConnection(stats interfaces.ConnectionStats) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if !stats.IsConnected() {
			return hErrors.ErrTransientChainUnavailable
		}

		return nil
	}
}
