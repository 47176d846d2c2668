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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hellofresh/health-go/v4"
	"github.com/mtahon/arbor-backend/app/config"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/test/mocks"
	"github.com/stretchr/testify/require"
)

func TestLiveness(t *testing.T) {
	healthController, err := NewHealthController(config.Db{}, &mocks.MockConnectionStats{})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "http://localhost"+livenessPath, nil)
	recorder := httptest.NewRecorder()
	tracingResponseWriter := newTracingResponseWriter(recorder)
	tracingResponseWriter.statusCode = http.StatusBadGateway
	healthController.Routes()[0].HandlerFunc.ServeHTTP(tracingResponseWriter, req)

	var check health.Check
	err = json.Unmarshal(tracingResponseWriter.data, &check)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, tracingResponseWriter.statusCode)
	require.Equal(t, "application/json", tracingResponseWriter.Header().Get("Content-Type"))
	require.Equal(t, health.StatusOK, check.Status)
}

func TestReadiness(t *testing.T) {
	for _, tc := range []struct {
		name      string
		connected bool
	}{
		{name: "chain connected", connected: true},
		{name: "chain disconnected", connected: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stats := &mocks.MockConnectionStats{}
			stats.On("IsConnected").Return(tc.connected)
			healthController, err := NewHealthController(config.Db{}, stats)
			require.NoError(t, err)

			req := httptest.NewRequest("GET", "http://localhost"+readinessPath, nil)
			recorder := httptest.NewRecorder()
			tracingResponseWriter := newTracingResponseWriter(recorder)
			healthController.Routes()[1].HandlerFunc.ServeHTTP(tracingResponseWriter, req)

			// the database is unreachable so the service is never ready
			var check health.Check
			err = json.Unmarshal(tracingResponseWriter.data, &check)
			require.NoError(t, err)
			require.Equal(t, "application/json", tracingResponseWriter.Header().Get("Content-Type"))
			require.Equal(t, health.StatusUnavailable, check.Status)
			require.Equal(t, http.StatusServiceUnavailable, tracingResponseWriter.statusCode)
			require.Contains(t, check.Failures, "postgresql")
			if tc.connected {
				require.NotContains(t, check.Failures, "blockchain")
			} else {
				require.Equal(t, hErrors.TransientChainUnavailable, check.Failures["blockchain"])
			}
		})
	}
}
