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
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mtahon/arbor-backend/app/db"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/test/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCheckpointGet(t *testing.T) {
	// given
	gdb, mock := mocks.DatabaseMock(t)
	repo := NewCheckpointRepository(db.NewDbClient(gdb, 0))
	mock.ExpectQuery(selectCheckpoint).
		WithArgs("blockNumber").
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).AddRow("blockNumber", int64(9612345)))

	// when
	actual, err := repo.Get(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, uint64(9612345), actual)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckpointGetNoRow(t *testing.T) {
	// given
	gdb, mock := mocks.DatabaseMock(t)
	repo := NewCheckpointRepository(db.NewDbClient(gdb, 0))
	mock.ExpectQuery(selectCheckpoint).
		WithArgs("blockNumber").
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}))

	// when
	actual, err := repo.Get(context.Background())

	// then
	assert.NoError(t, err)
	assert.Zero(t, actual)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckpointGetDbError(t *testing.T) {
	// given
	gdb, mock := mocks.DatabaseMock(t)
	repo := NewCheckpointRepository(db.NewDbClient(gdb, 0))
	mock.ExpectQuery(selectCheckpoint).WillReturnError(errors.New("connection refused"))

	// when
	actual, err := repo.Get(context.Background())

	// then
	assert.ErrorIs(t, err, hErrors.ErrDatabaseError)
	assert.Zero(t, actual)
}

func TestCheckpointGetNegativeValue(t *testing.T) {
	// given
	gdb, mock := mocks.DatabaseMock(t)
	repo := NewCheckpointRepository(db.NewDbClient(gdb, 0))
	mock.ExpectQuery(selectCheckpoint).
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).AddRow("blockNumber", int64(-1)))

	// when
	_, err := repo.Get(context.Background())

	// then
	assert.ErrorIs(t, err, hErrors.ErrDatabaseError)
}

func TestCheckpointSet(t *testing.T) {
	// given
	gdb, mock := mocks.DatabaseMock(t)
	repo := NewCheckpointRepository(db.NewDbClient(gdb, 0))
	mock.ExpectExec(upsertCheckpoint).
		WithArgs("blockNumber", int64(9612400)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// when
	err := repo.Set(context.Background(), 9612400)

	// then
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckpointSetOutOfRange(t *testing.T) {
	// given
	gdb, mock := mocks.DatabaseMock(t)
	repo := NewCheckpointRepository(db.NewDbClient(gdb, 0))

	// when
	err := repo.Set(context.Background(), math.MaxUint64)

	// then
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckpointSetDbError(t *testing.T) {
	// given
	gdb, mock := mocks.DatabaseMock(t)
	repo := NewCheckpointRepository(db.NewDbClient(gdb, 0))
	mock.ExpectExec(upsertCheckpoint).WillReturnError(errors.New("deadlock"))

	// when
	err := repo.Set(context.Background(), 10)

	// then
	assert.ErrorIs(t, err, hErrors.ErrDatabaseError)
}
