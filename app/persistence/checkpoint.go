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

package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/app/persistence/domain"
	"github.com/mtahon/arbor-backend/app/tools"
	"gorm.io/gorm"
)

const (
	// selectCheckpoint - Selects the last processed block number
	selectCheckpoint = `select name, value from stats where name = @name`

	// upsertCheckpoint - Stores the block number, keeping the stored one if it is higher
	upsertCheckpoint = `insert into stats (name, value) values (@name, @value)
                      on conflict (name) do update set value = greatest(stats.value, excluded.value)`
)

// checkpointRepository struct that has connection to the Database
type checkpointRepository struct {
	dbClient interfaces.DbClient
}

// NewCheckpointRepository creates an instance of a checkpointRepository struct
func NewCheckpointRepository(dbClient interfaces.DbClient) interfaces.CheckpointRepository {
	return &checkpointRepository{dbClient: dbClient}
}

func (cr *checkpointRepository) Get(ctx context.Context) (uint64, error) {
	db, cancel := cr.dbClient.GetDbWithContext(ctx)
	defer cancel()

	stat := &domain.Stat{}
	if err := db.Raw(selectCheckpoint, sql.Named("name", domain.StatBlockNumber)).First(stat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, handleDatabaseError(err, nil)
	}

	value, err := tools.CastToUint64(stat.Value)
	if err != nil {
		return 0, handleDatabaseError(err, nil)
	}

	return value, nil
}

func (cr *checkpointRepository) Set(ctx context.Context, blockNumber uint64) error {
	value, err := tools.CastToInt64(blockNumber)
	if err != nil {
		return err
	}

	db, cancel := cr.dbClient.GetDbWithContext(ctx)
	defer cancel()

	err = db.Exec(
		upsertCheckpoint,
		sql.Named("name", domain.StatBlockNumber),
		sql.Named("value", value),
	).Error
	if err != nil {
		return handleDatabaseError(err, nil)
	}

	return nil
}
