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

package mocks

import (
	"context"
	"sync"

	"github.com/mtahon/arbor-backend/app/domain/types"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/stretchr/testify/mock"
)

type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) GetOrganization(ctx context.Context, orgId types.OrgId) (*types.RegistryRecord, error) {
	args := m.Called(ctx, orgId)
	record, _ := args.Get(0).(*types.RegistryRecord)
	return record, args.Error(1)
}

func (m *MockChainClient) GetSubsidiaries(ctx context.Context, orgId types.OrgId) ([]types.OrgId, error) {
	args := m.Called(ctx, orgId)
	subsidiaries, _ := args.Get(0).([]types.OrgId)
	return subsidiaries, args.Error(1)
}

func (m *MockChainClient) GetOrganizations(ctx context.Context) ([]types.OrgId, error) {
	args := m.Called(ctx)
	orgIds, _ := args.Get(0).([]types.OrgId)
	return orgIds, args.Error(1)
}

func (m *MockChainClient) CurrentBlockHeight(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainClient) SubscribeEvents(ctx context.Context, fromBlock uint64) (interfaces.EventStream, error) {
	args := m.Called(ctx, fromBlock)
	stream, _ := args.Get(0).(interfaces.EventStream)
	return stream, args.Error(1)
}

func (m *MockChainClient) Close() {
	m.Called()
}

// MockEventStream is a channel backed stream, tests feed it with Send and Fail
type MockEventStream struct {
	events    chan types.Event
	errs      chan error
	closeOnce sync.Once
	closed    chan struct{}
}

func NewMockEventStream() *MockEventStream {
	return &MockEventStream{
		events: make(chan types.Event),
		errs:   make(chan error, 1),
		closed: make(chan struct{}),
	}
}

func (s *MockEventStream) Events() <-chan types.Event {
	return s.events
}

func (s *MockEventStream) Err() <-chan error {
	return s.errs
}

func (s *MockEventStream) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// IsClosed returns true once Close has been called
func (s *MockEventStream) IsClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

// Send blocks until the consumer takes the event, false if the stream is closed first
func (s *MockEventStream) Send(event types.Event) bool {
	select {
	case s.events <- event:
		return true
	case <-s.closed:
		return false
	}
}

// Fail reports err on the stream
func (s *MockEventStream) Fail(err error) {
	s.errs <- err
}

type MockDialer struct {
	mock.Mock
}

func (m *MockDialer) Dial(ctx context.Context) (interfaces.ChainClient, error) {
	args := m.Called(ctx)
	client, _ := args.Get(0).(interfaces.ChainClient)
	return client, args.Error(1)
}
