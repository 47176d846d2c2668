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
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mtahon/arbor-backend/app/config"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/app/tools"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

var errSessionEnded = errors.New("Session ended")

// OnConnected runs a session with a freshly connected client. It blocks until the session is over
type OnConnected func(ctx context.Context, client interfaces.ChainClient) error

// OnDisconnected is told why a session ended
type OnDisconnected func(err error)

// ConnectionGuard keeps a registry connection alive. Every connection uses a brand new client, a lost connection is
// re-dialed after a constant delay, forever
type ConnectionGuard struct {
	config         config.Chain
	dialer         interfaces.Dialer
	onConnected    OnConnected
	onDisconnected OnDisconnected

	connections atomic.Uint64
	mutex       sync.RWMutex
	state       State
}

func NewConnectionGuard(
	dialer interfaces.Dialer,
	onConnected OnConnected,
	onDisconnected OnDisconnected,
	config config.Chain,
) *ConnectionGuard {
	return &ConnectionGuard{
		config:         config,
		dialer:         dialer,
		onConnected:    onConnected,
		onDisconnected: onDisconnected,
	}
}

// Run connects and reconnects until ctx is done, it then returns ctx.Err()
func (g *ConnectionGuard) Run(ctx context.Context) error {
	policy := backoff.WithContext(backoff.NewConstantBackOff(g.config.ReconnectDelay), ctx)
	return backoff.RetryNotify(
		func() error { return g.connectOnce(ctx) },
		policy,
		func(err error, delay time.Duration) {
			log.Warnf("Registry connection lost: %s, reconnecting in %s", err, delay)
		},
	)
}

func (g *ConnectionGuard) State() State {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.state
}

func (g *ConnectionGuard) IsConnected() bool {
	return g.State() == StateConnected
}

// IsReconnection returns true while a previously established connection is being restored
func (g *ConnectionGuard) IsReconnection() bool {
	return !g.IsConnected() && g.connections.Load() > 0
}

// Reconnects returns the number of connections established after the first one
func (g *ConnectionGuard) Reconnects() uint64 {
	return tools.SaturatingSub(g.connections.Load(), 1)
}

// connectOnce runs one connection from dial to disconnect. It always returns an error, a permanent one once ctx is done
func (g *ConnectionGuard) connectOnce(ctx context.Context) error {
	if ctx.Err() != nil {
		return backoff.Permanent(ctx.Err())
	}

	g.setState(StateConnecting)
	client, err := g.dialer.Dial(ctx)
	if err != nil {
		g.setState(StateDisconnected)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}

	connections := g.connections.Add(1)
	g.setState(StateConnected)
	log.Infof("Connected to the registry node (connection #%d)", connections)

	err = g.session(ctx, client)

	g.setState(StateDisconnected)
	client.Close()
	if g.onDisconnected != nil {
		g.onDisconnected(err)
	}

	if ctx.Err() != nil {
		return backoff.Permanent(ctx.Err())
	}

	return err
}

// session runs onConnected next to the keep-alive probe, whichever ends first ends the other
func (g *ConnectionGuard) session(ctx context.Context, client interfaces.ChainClient) error {
	group, sessionCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := g.onConnected(sessionCtx, client); err != nil {
			return err
		}
		return errSessionEnded
	})

	if g.config.HealthCheckInterval > 0 {
		group.Go(func() error {
			return g.probe(sessionCtx, client)
		})
	}

	return group.Wait()
}

func (g *ConnectionGuard) probe(ctx context.Context, client interfaces.ChainClient) error {
	ticker := time.NewTicker(g.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := client.CurrentBlockHeight(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return errors.Wrap(err, "Keep-alive probe failed")
			}
		}
	}
}

func (g *ConnectionGuard) setState(state State) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.state = state
}
