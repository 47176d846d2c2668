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

package api

import (
	"net/http"

	"github.com/mtahon/arbor-backend/app/interfaces"
)

const connectionStatsPath = apiPrefix + "/stats/connection"

type statsController struct {
	connection interfaces.ConnectionStats
}

func NewStatsController(connection interfaces.ConnectionStats) Router {
	return &statsController{connection: connection}
}

func (c *statsController) Routes() Routes {
	return Routes{
		{"connectionStats", http.MethodGet, connectionStatsPath, c.Connection},
	}
}

// Connection implements GET /api/v1/stats/connection
func (c *statsController) Connection(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, http.StatusOK, &connectionStats{
		Connected:    c.connection.IsConnected(),
		Reconnection: c.connection.IsReconnection(),
		Reconnects:   c.connection.Reconnects(),
	})
}
