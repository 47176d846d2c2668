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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrganizationQueryNormalize(t *testing.T) {
	tests := []struct {
		name           string
		input          OrganizationQuery
		expectedNumber int
		expectedSize   int
		expectedOffset int
	}{
		{name: "defaults", expectedNumber: 1, expectedSize: DefaultPageSize},
		{
			name:           "second page",
			input:          OrganizationQuery{PageNumber: 2, PageSize: 10},
			expectedNumber: 2,
			expectedSize:   10,
			expectedOffset: 10,
		},
		{
			name:           "size capped",
			input:          OrganizationQuery{PageNumber: 3, PageSize: 1000},
			expectedNumber: 3,
			expectedSize:   MaxPageSize,
			expectedOffset: 2 * MaxPageSize,
		},
		{
			name:           "negative",
			input:          OrganizationQuery{PageNumber: -1, PageSize: -5},
			expectedNumber: 1,
			expectedSize:   DefaultPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := tt.input.Normalize()

			assert.Equal(t, tt.expectedNumber, actual.PageNumber)
			assert.Equal(t, tt.expectedSize, actual.PageSize)
			assert.Equal(t, tt.expectedOffset, actual.Offset())
		})
	}
}
