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

package test

import (
	"github.com/mtahon/arbor-backend/app/db"
	"github.com/mtahon/arbor-backend/app/interfaces"
	tdb "github.com/mtahon/arbor-backend/test/db"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IntegrationTest owns a migrated postgres container plus a client whose credentials are rejected, for the error
// paths of the repositories
type IntegrationTest struct {
	DbClient        interfaces.DbClient
	DbResource      tdb.DbResource
	InvalidDbClient interfaces.DbClient
}

func (it *IntegrationTest) CleanupDb() {
	tdb.CleanupDb(it.DbResource.GetDb())
}

func (it *IntegrationTest) Setup() {
	it.DbResource = tdb.SetupDb(true)
	it.DbClient = db.NewDbClient(it.DbResource.GetGormDb(), 0)

	config := it.DbResource.GetDbConfig()
	config.Password = "bad_password"
	invalidDb, _ := gorm.Open(postgres.Open(config.GetDsn()), &gorm.Config{Logger: logger.Discard})
	it.InvalidDbClient = db.NewDbClient(invalidDb, 0)
}

func (it IntegrationTest) TearDown() {
	tdb.TearDownDb(it.DbResource)
}
