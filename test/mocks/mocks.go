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
	"database/sql/driver"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var sqlNamedParamRe = regexp.MustCompile(`(@[^ ,)"'\n]+)`)

// replaces named parameter to indexed format $1, $2, ...
var queryMatcher = sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
	namedParams := sqlNamedParamRe.FindAllString(expectedSQL, -1)

	index := 1
	namedIndexes := make(map[string]string)
	names := make([]string, 0, len(namedParams))
	for _, name := range namedParams {
		if _, ok := namedIndexes[name]; !ok {
			namedIndexes[name] = fmt.Sprintf("$%d", index)
			names = append(names, name)
			index++
		}
	}

	// longest first, so @name does not clobber @name_owner
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, name := range names {
		expectedSQL = strings.ReplaceAll(expectedSQL, name, namedIndexes[name])
	}

	return sqlmock.QueryMatcherRegexp.Match(regexp.QuoteMeta(expectedSQL), actualSQL)
})

// DatabaseMock returns a mocked gorm.DB connection and Sqlmock for mocking actual queries
func DatabaseMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(queryMatcher))
	if err != nil {
		t.Errorf("Error: '%s'", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:                 db,
		DriverName:           "postgres",
		DSN:                  "sqlmock_db_0",
		PreferSimpleProtocol: true,
	})
	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Errorf("Error: '%s'", err)
	}
	return gdb, mock
}

// GetColumnNames returns the column names of the gorm model in field order
func GetColumnNames(model interface{}) []string {
	modelSchema, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		panic(err)
	}

	return modelSchema.DBNames
}

// GetFieldsValuesAsDriverValue returns the fields values converted the way database/sql converts query arguments
func GetFieldsValuesAsDriverValue(v interface{}) []driver.Value {
	value := reflect.Indirect(reflect.ValueOf(v))
	var result []driver.Value
	for i := 0; i < value.NumField(); i++ {
		converted, err := driver.DefaultParameterConverter.ConvertValue(value.Field(i).Interface())
		if err != nil {
			panic(err)
		}
		result = append(result, converted)
	}

	return result
}
