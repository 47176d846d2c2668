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
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/require"
)

var registryAddress = common.HexToAddress("0xc8fD300bE7e4613bCa573ad820a6F1f0b915CfcA")

// fakeBackend answers contract calls from canned outputs and serves logs from memory
type fakeBackend struct {
	mutex         sync.Mutex
	callErr       error
	calls         []string
	closed        bool
	filterErr     error
	filterQueries []ethereum.FilterQuery
	head          uint64
	headErr       error
	live          chan ethTypes.Log
	outputs       map[string][]interface{}
	past          []ethTypes.Log
	subscribeErr  error
	subErr        chan error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		live:    make(chan ethTypes.Log),
		outputs: make(map[string][]interface{}),
		subErr:  make(chan error, 1),
	}
}

func (b *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (b *fakeBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.callErr != nil {
		return nil, b.callErr
	}

	method, err := registryAbi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	b.calls = append(b.calls, method.Name)

	return method.Outputs.Pack(b.outputs[method.Name]...)
}

func (b *fakeBackend) FilterLogs(_ context.Context, query ethereum.FilterQuery) ([]ethTypes.Log, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.filterQueries = append(b.filterQueries, query)
	if b.filterErr != nil {
		return nil, b.filterErr
	}

	logs := make([]ethTypes.Log, 0)
	for _, pastLog := range b.past {
		if pastLog.BlockNumber >= query.FromBlock.Uint64() && pastLog.BlockNumber <= query.ToBlock.Uint64() {
			logs = append(logs, pastLog)
		}
	}

	return logs, nil
}

func (b *fakeBackend) SubscribeFilterLogs(
	_ context.Context,
	_ ethereum.FilterQuery,
	ch chan<- ethTypes.Log,
) (ethereum.Subscription, error) {
	if b.subscribeErr != nil {
		return nil, b.subscribeErr
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		for {
			select {
			case <-quit:
				return nil
			case err := <-b.subErr:
				return err
			case liveLog := <-b.live:
				select {
				case ch <- liveLog:
				case <-quit:
					return nil
				}
			}
		}
	}), nil
}

func (b *fakeBackend) BlockNumber(context.Context) (uint64, error) {
	return b.head, b.headErr
}

func (b *fakeBackend) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.closed = true
}

func (b *fakeBackend) getCalls() []string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return append([]string{}, b.calls...)
}

func (b *fakeBackend) getFilterQueries() []ethereum.FilterQuery {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return append([]ethereum.FilterQuery{}, b.filterQueries...)
}

// registryLog builds a log of the named registry event, data holds the non-indexed arguments
func registryLog(
	t *testing.T,
	name string,
	blockNumber uint64,
	index uint,
	topics []common.Hash,
	data ...interface{},
) ethTypes.Log {
	abiEvent, ok := registryAbi.Events[name]
	require.True(t, ok, name)

	packed, err := abiEvent.Inputs.NonIndexed().Pack(data...)
	require.NoError(t, err)

	return ethTypes.Log{
		Address:     registryAddress,
		Topics:      append([]common.Hash{abiEvent.ID}, topics...),
		Data:        packed,
		BlockNumber: blockNumber,
		TxHash:      common.BigToHash(new(big.Int).SetUint64(blockNumber*1000 + uint64(index))),
		Index:       index,
	}
}

func addressTopic(address common.Address) common.Hash {
	return common.BytesToHash(address.Bytes())
}
