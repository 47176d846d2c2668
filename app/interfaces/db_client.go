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

package interfaces

import (
	"context"

	"gorm.io/gorm"
)

// DbClient Interface that all DbClient structs must implement
type DbClient interface {
	GetDb() *gorm.DB

	// GetDbWithContext returns a db session bound to a child context limited by the statement timeout. The caller
	// must call the returned cancel function once the statement completes
	GetDbWithContext(ctx context.Context) (*gorm.DB, context.CancelFunc)
}
