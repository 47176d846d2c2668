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

package tools

import (
	"net/http"

	"github.com/mtahon/arbor-backend/app/config"
	"golang.org/x/time/rate"
)

type limitedTransport struct {
	limiter   *rate.Limiter
	userAgent string
}

func (t *limitedTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(request.Context()); err != nil {
		return nil, err
	}

	if t.userAgent != "" && request.Header.Get("User-Agent") == "" {
		request = request.Clone(request.Context())
		request.Header.Set("User-Agent", t.userAgent)
	}

	return http.DefaultTransport.RoundTrip(request)
}

// NewHttpClient returns the client shared by all outbound calls. Requests are throttled to RateLimit per second,
// a non-positive RateLimit disables throttling. Timeouts are left to the request contexts.
func NewHttpClient(config config.Http) *http.Client {
	limit := rate.Inf
	burst := 1
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
		burst = max(1, int(config.RateLimit))
	}

	return &http.Client{
		Transport: &limitedTransport{
			limiter:   rate.NewLimiter(limit, burst),
			userAgent: config.UserAgent,
		},
	}
}
