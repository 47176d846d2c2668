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
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/mtahon/arbor-backend/app/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpClientSetsUserAgent(t *testing.T) {
	// given
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	userAgent := ""
	httpmock.RegisterResponder(http.MethodGet, "https://example.com/org.id",
		func(request *http.Request) (*http.Response, error) {
			userAgent = request.Header.Get("User-Agent")
			return httpmock.NewStringResponse(http.StatusOK, "ok"), nil
		})
	client := NewHttpClient(config.Http{UserAgent: "arbor-directory"})

	// when
	response, err := client.Get("https://example.com/org.id")

	// then
	require.NoError(t, err)
	response.Body.Close()
	assert.Equal(t, "arbor-directory", userAgent)
}

func TestHttpClientRateLimited(t *testing.T) {
	// given
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodGet, "https://example.com/", httpmock.NewStringResponder(http.StatusOK, ""))
	client := NewHttpClient(config.Http{RateLimit: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	first, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://example.com/", nil)
	require.NoError(t, err)
	second := first.Clone(ctx)

	// when
	response, err := client.Do(first)
	require.NoError(t, err)
	response.Body.Close()
	_, err = client.Do(second)

	// then
	assert.Error(t, err, "the second request must wait for a token past the deadline")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}
