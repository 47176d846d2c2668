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

package tools

import (
	"regexp"
	"strings"
)

const HexPrefix string = "0x"

var (
	hash32Pattern      = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
	hash32TokenPattern = regexp.MustCompile(`0x[0-9a-fA-F]{64}`)
)

// SafeAddHexPrefix - adds 0x prefix to a string if it does not have one
func SafeAddHexPrefix(string string) string {
	if strings.HasPrefix(string, HexPrefix) {
		return string
	}
	return HexPrefix + string
}

// IsHash32 - checks the string is exactly a 0x prefixed 32-byte hex value
func IsHash32(value string) bool {
	return hash32Pattern.MatchString(value)
}

// FindHash32Tokens - returns every 0x prefixed 32-byte hex token embedded in text, in order of appearance
func FindHash32Tokens(text string) []string {
	return hash32TokenPattern.FindAllString(text, -1)
}
