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

package chain

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mtahon/arbor-backend/app/config"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/test/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var guardConfig = config.Chain{
	ReconnectDelay: 10 * time.Millisecond,
	RpcTimeout:     time.Second,
}

func runGuard(guard *ConnectionGuard) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- guard.Run(ctx)
	}()
	return cancel, done
}

func waitDone(t *testing.T, done <-chan error) error {
	select {
	case err := <-done:
		return err
	case <-time.After(receiveTimeout):
		require.FailNow(t, "guard did not stop")
	}
	return nil
}

func blockUntilDone(ctx context.Context, _ interfaces.ChainClient) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestConnectionGuardReconnectsWithFreshClient(t *testing.T) {
	// given
	first := &mocks.MockChainClient{}
	first.On("Close").Once()
	second := &mocks.MockChainClient{}
	second.On("Close").Once()
	dialer := &mocks.MockDialer{}
	dialer.On("Dial", mock.Anything).Return(nil, hErrors.ErrTransientChainUnavailable).Once()
	dialer.On("Dial", mock.Anything).Return(first, nil).Once()
	dialer.On("Dial", mock.Anything).Return(second, nil).Once()

	sessions := make(chan interfaces.ChainClient, 2)
	onConnected := func(ctx context.Context, client interfaces.ChainClient) error {
		sessions <- client
		if client == first {
			return errors.New("stream broke")
		}
		return blockUntilDone(ctx, client)
	}
	var disconnects atomic.Int32
	guard := NewConnectionGuard(dialer, onConnected, func(error) { disconnects.Add(1) }, guardConfig)

	// when
	cancel, done := runGuard(guard)

	// then
	assert.Same(t, first, <-sessions)
	assert.Same(t, second, <-sessions)
	assert.True(t, guard.IsConnected())
	assert.False(t, guard.IsReconnection())
	assert.Equal(t, uint64(1), guard.Reconnects())

	cancel()
	assert.ErrorIs(t, waitDone(t, done), context.Canceled)
	assert.Equal(t, StateDisconnected, guard.State())
	assert.Equal(t, int32(2), disconnects.Load())
	first.AssertExpectations(t)
	second.AssertExpectations(t)
	dialer.AssertExpectations(t)
}

func TestConnectionGuardProbeFailureEndsSession(t *testing.T) {
	// given
	client := &mocks.MockChainClient{}
	client.On("CurrentBlockHeight", mock.Anything).Return(uint64(0), errors.New("node down"))
	client.On("Close").Once()
	dialer := &mocks.MockDialer{}
	dialer.On("Dial", mock.Anything).Return(client, nil).Once()
	dialer.On("Dial", mock.Anything).Return(nil, hErrors.ErrTransientChainUnavailable)

	disconnected := make(chan error, 1)
	chainConfig := guardConfig
	chainConfig.HealthCheckInterval = 5 * time.Millisecond
	guard := NewConnectionGuard(dialer, blockUntilDone, func(err error) { disconnected <- err }, chainConfig)

	// when
	cancel, done := runGuard(guard)

	// then
	select {
	case err := <-disconnected:
		assert.Contains(t, err.Error(), "Keep-alive probe failed")
	case <-time.After(receiveTimeout):
		require.FailNow(t, "session not ended")
	}
	assert.Eventually(t, guard.IsReconnection, receiveTimeout, 5*time.Millisecond)
	assert.Equal(t, uint64(0), guard.Reconnects())

	cancel()
	assert.ErrorIs(t, waitDone(t, done), context.Canceled)
	client.AssertExpectations(t)
}

func TestConnectionGuardSessionEndsWithoutError(t *testing.T) {
	// given
	client := &mocks.MockChainClient{}
	client.On("Close")
	dialer := &mocks.MockDialer{}
	dialer.On("Dial", mock.Anything).Return(client, nil)

	disconnected := make(chan error, 1)
	onConnected := func(context.Context, interfaces.ChainClient) error { return nil }
	onDisconnected := func(err error) {
		select {
		case disconnected <- err:
		default:
		}
	}
	guard := NewConnectionGuard(dialer, onConnected, onDisconnected, guardConfig)

	// when
	cancel, done := runGuard(guard)

	// then
	assert.ErrorIs(t, <-disconnected, errSessionEnded)
	cancel()
	assert.ErrorIs(t, waitDone(t, done), context.Canceled)
}

func TestConnectionGuardCancelledWhileDialing(t *testing.T) {
	// given
	var dialed atomic.Bool
	dialer := &mocks.MockDialer{}
	dialer.On("Dial", mock.Anything).
		Run(func(mock.Arguments) { dialed.Store(true) }).
		Return(nil, hErrors.ErrTransientChainUnavailable)
	guard := NewConnectionGuard(dialer, blockUntilDone, nil, guardConfig)

	// when
	cancel, done := runGuard(guard)
	assert.Eventually(t, dialed.Load, receiveTimeout, time.Millisecond)
	cancel()

	// then
	assert.ErrorIs(t, waitDone(t, done), context.Canceled)
	assert.False(t, guard.IsConnected())
	assert.False(t, guard.IsReconnection())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "connected", StateConnected.String())
}
