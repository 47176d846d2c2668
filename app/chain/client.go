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
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/pkg/errors"
)

// Backend is the subset of the node API the registry client needs, *ethclient.Client implements it
type Backend interface {
	bind.ContractCaller
	ethereum.LogFilterer
	BlockNumber(ctx context.Context) (uint64, error)
	Close()
}

type registryClient struct {
	backend    Backend
	contract   *bind.BoundContract
	registry   common.Address
	rpcTimeout time.Duration
}

// NewRegistryClient binds the registry contract at the address to the backend
func NewRegistryClient(backend Backend, registry common.Address, rpcTimeout time.Duration) interfaces.ChainClient {
	return &registryClient{
		backend:    backend,
		contract:   bind.NewBoundContract(registry, registryAbi, backend, nil, backend),
		registry:   registry,
		rpcTimeout: rpcTimeout,
	}
}

func (c *registryClient) GetOrganization(ctx context.Context, orgId types.OrgId) (*types.RegistryRecord, error) {
	var out []interface{}
	if err := c.call(ctx, &out, methodGetOrganization, orgId.Hash()); err != nil {
		return nil, err
	}

	if len(out) != 9 {
		return nil, errors.Errorf("Unexpected %s output length %d", methodGetOrganization, len(out))
	}

	record := &types.RegistryRecord{
		Exists:            *abi.ConvertType(out[0], new(bool)).(*bool),
		OrgId:             types.OrgId(*abi.ConvertType(out[1], new([32]byte)).(*[32]byte)),
		OrgJsonUri:        *abi.ConvertType(out[2], new(string)).(*string),
		OrgJsonHash:       *abi.ConvertType(out[3], new([32]byte)).(*[32]byte),
		ParentEntity:      types.OrgId(*abi.ConvertType(out[4], new([32]byte)).(*[32]byte)),
		Owner:             *abi.ConvertType(out[5], new(common.Address)).(*common.Address),
		Director:          *abi.ConvertType(out[6], new(common.Address)).(*common.Address),
		IsActive:          *abi.ConvertType(out[7], new(bool)).(*bool),
		DirectorConfirmed: *abi.ConvertType(out[8], new(bool)).(*bool),
		Deposit:           big.NewInt(0),
	}

	if !record.Exists {
		return record, nil
	}

	out = nil
	if err := c.call(ctx, &out, methodGetLifDepositValue, orgId.Hash()); err != nil {
		return nil, err
	}

	if len(out) == 1 {
		record.Deposit = *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	}

	return record, nil
}

func (c *registryClient) GetSubsidiaries(ctx context.Context, orgId types.OrgId) ([]types.OrgId, error) {
	var out []interface{}
	if err := c.call(ctx, &out, methodGetSubsidiaries, orgId.Hash()); err != nil {
		return nil, err
	}

	return toOrgIds(out)
}

func (c *registryClient) GetOrganizations(ctx context.Context) ([]types.OrgId, error) {
	var out []interface{}
	if err := c.call(ctx, &out, methodGetOrganizations); err != nil {
		return nil, err
	}

	return toOrgIds(out)
}

func (c *registryClient) CurrentBlockHeight(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.rpcTimeout)
	defer cancel()

	height, err := c.backend.BlockNumber(ctx)
	if err != nil {
		return 0, errors.Wrap(hErrors.ErrTransientChainUnavailable, err.Error())
	}

	return height, nil
}

func (c *registryClient) SubscribeEvents(ctx context.Context, fromBlock uint64) (interfaces.EventStream, error) {
	head, err := c.CurrentBlockHeight(ctx)
	if err != nil {
		return nil, err
	}

	return newEventStream(ctx, c.backend, c.contract, c.registry, fromBlock, head, c.rpcTimeout)
}

func (c *registryClient) Close() {
	c.backend.Close()
}

func (c *registryClient) call(ctx context.Context, out *[]interface{}, method string, params ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.rpcTimeout)
	defer cancel()

	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, out, method, params...); err != nil {
		return errors.Wrapf(hErrors.ErrTransientChainUnavailable, "%s: %s", method, err)
	}

	return nil
}

func toOrgIds(out []interface{}) ([]types.OrgId, error) {
	if len(out) != 1 {
		return nil, errors.Errorf("Unexpected output length %d", len(out))
	}

	hashes := *abi.ConvertType(out[0], new([][32]byte)).(*[][32]byte)
	orgIds := make([]types.OrgId, 0, len(hashes))
	for _, hash := range hashes {
		orgIds = append(orgIds, types.OrgId(hash))
	}

	return orgIds, nil
}

// filterQuery selects every log of the registry in the block range, a nil toBlock means the latest block
func filterQuery(registry common.Address, fromBlock uint64, toBlock *big.Int) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{registry},
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   toBlock,
	}
}
