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

package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Config struct {
	Chain           Chain
	Db              Db
	Document        Document
	Http            Http
	Log             Log
	Pipeline        Pipeline
	Port            uint16 `validate:"gt=0"`
	Resolver        Resolver
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	Trust           Trust
}

type Chain struct {
	Endpoint            string         `validate:"required"`
	HealthCheckInterval time.Duration  `yaml:"healthCheckInterval"`
	ReconnectDelay      time.Duration  `yaml:"reconnectDelay" validate:"gt=0"`
	RegistryAddress     common.Address `yaml:"registryAddress"`
	RpcTimeout          time.Duration  `yaml:"rpcTimeout" validate:"gt=0"`
}

type Db struct {
	Host             string
	Migrate          bool
	Name             string
	Password         string
	Pool             Pool
	Port             uint16
	StatementTimeout uint `yaml:"statementTimeout"`
	Username         string
}

func (db Db) GetDsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s password=%s sslmode=disable",
		db.Host,
		db.Port,
		db.Username,
		db.Name,
		db.Password,
	)
}

type Document struct {
	IpfsGateway string        `yaml:"ipfsGateway"`
	MaxSize     int64         `yaml:"maxSize" validate:"gt=0"`
	Timeout     time.Duration `validate:"gt=0"`
}

type Http struct {
	IdleTimeout       time.Duration `yaml:"idleTimeout"`
	RateLimit         float64       `yaml:"rateLimit"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	UserAgent         string        `yaml:"userAgent"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
}

type Log struct {
	Level string
}

type Pipeline struct {
	HeadPollInterval time.Duration `yaml:"headPollInterval" validate:"gt=0"`
	HeadWaitTimeout  time.Duration `yaml:"headWaitTimeout" validate:"gt=0"`
	SafetyMargin     uint64        `yaml:"safetyMargin"`
	ScanOnStartup    bool          `yaml:"scanOnStartup"`
	ScanWorkers      int           `yaml:"scanWorkers" validate:"gt=0"`
}

type Pool struct {
	MaxIdleConnections int `yaml:"maxIdleConnections"`
	MaxLifetime        int `yaml:"maxLifetime"`
	MaxOpenConnections int `yaml:"maxOpenConnections"`
}

type Resolver struct {
	LookupAttempts int           `yaml:"lookupAttempts" validate:"gt=0"`
	LookupDelay    time.Duration `yaml:"lookupDelay"`
	MaxDepth       int           `yaml:"maxDepth" validate:"gt=0"`
}

type Trust struct {
	CacheMaxSize      int           `yaml:"cacheMaxSize"`
	CacheTtl          time.Duration `yaml:"cacheTtl"`
	LifMinimumDeposit float64       `yaml:"lifMinimumDeposit"`
	Timeout           time.Duration `validate:"gt=0"`
}
