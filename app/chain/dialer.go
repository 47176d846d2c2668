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

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/mtahon/arbor-backend/app/config"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/pkg/errors"
)

type nodeDialer struct {
	config config.Chain
}

// NewDialer returns a dialer opening a brand new node connection on every call
func NewDialer(config config.Chain) interfaces.Dialer {
	return &nodeDialer{config: config}
}

func (d *nodeDialer) Dial(ctx context.Context) (interfaces.ChainClient, error) {
	dialCtx, cancel := context.WithTimeout(ctx, d.config.RpcTimeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(dialCtx, d.config.Endpoint)
	if err != nil {
		return nil, errors.Wrapf(hErrors.ErrTransientChainUnavailable, "dial: %s", err)
	}

	return NewRegistryClient(ethclient.NewClient(rpcClient), d.config.RegistryAddress, d.config.RpcTimeout), nil
}
