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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	errRetryable = errors.New("retryable")
	errFatal     = errors.New("fatal")
)

func isRetryable(err error) bool {
	return errors.Is(err, errRetryable)
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	// given
	calls := 0
	operation := func() error {
		calls++
		if calls < 3 {
			return errRetryable
		}
		return nil
	}

	// when
	err := Retry(context.Background(), 5, time.Millisecond, isRetryable, operation)

	// then
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhausted(t *testing.T) {
	// given
	calls := 0
	operation := func() error {
		calls++
		return errRetryable
	}

	// when
	err := Retry(context.Background(), 5, time.Millisecond, isRetryable, operation)

	// then
	assert.ErrorIs(t, err, errRetryable)
	assert.Equal(t, 5, calls)
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	// given
	calls := 0
	operation := func() error {
		calls++
		return errFatal
	}

	// when
	err := Retry(context.Background(), 5, time.Millisecond, isRetryable, operation)

	// then
	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
}

func TestRetryZeroAttemptsCallsOnce(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 0, time.Millisecond, nil, func() error {
		calls++
		return errRetryable
	})

	assert.ErrorIs(t, err, errRetryable)
	assert.Equal(t, 1, calls)
}

func TestRetryCancelledContext(t *testing.T) {
	// given
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	operation := func() error {
		calls++
		cancel()
		return errRetryable
	}

	// when
	err := Retry(ctx, 5, time.Hour, isRetryable, operation)

	// then
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
