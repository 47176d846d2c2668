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

package domain

const (
	tableNameStat = "stats"

	StatBlockNumber = "blockNumber"
)

// Stat is a named counter, the checkpoint is stored under StatBlockNumber
type Stat struct {
	Name  string `gorm:"primaryKey"`
	Value int64
}

// TableName returns stats table name
func (Stat) TableName() string {
	return tableNameStat
}
