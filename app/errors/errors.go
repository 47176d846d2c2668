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

package errors

import (
	stdErrors "errors"
	"net/http"
)

// Error is the error type surfaced by the directory, its shape is also the body of API error responses
type Error struct {
	Code      int32                  `json:"code"`
	Message   string                 `json:"message"`
	Retriable bool                   `json:"retriable"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the same catalogue error, ignoring details
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code && e.Message == t.Message
}

var (
	ErrDatabaseError             = newError(DatabaseError, http.StatusInternalServerError, true)
	ErrDocumentUnverifiable      = newError(DocumentUnverifiable, http.StatusUnprocessableEntity, false)
	ErrInternalServerError       = newError(InternalServerError, http.StatusInternalServerError, true)
	ErrInvalidArgument           = newError(InvalidArgument, http.StatusBadRequest, false)
	ErrNotFound                  = newError(NotFound, http.StatusNotFound, true)
	ErrOrganizationNotFound      = newError(OrganizationNotFound, http.StatusNotFound, false)
	ErrParentResolutionFailed    = newError(ParentResolutionFailed, http.StatusInternalServerError, true)
	ErrTransientChainUnavailable = newError(TransientChainUnavailable, http.StatusServiceUnavailable, true)
)

const (
	DatabaseError             = "Database error"
	DocumentUnverifiable      = "Organization document is unverifiable"
	InternalServerError       = "Internal Server Error"
	InvalidArgument           = "Invalid argument"
	NotFound                  = "Organization not found in the registry"
	OrganizationNotFound      = "Organization not found in the directory"
	ParentResolutionFailed    = "Parent organization resolution failed"
	TransientChainUnavailable = "Blockchain node is unavailable"
)

// Errors lists every catalogue error by message
var Errors = map[string]*Error{
	DatabaseError:             ErrDatabaseError,
	DocumentUnverifiable:      ErrDocumentUnverifiable,
	InternalServerError:       ErrInternalServerError,
	InvalidArgument:           ErrInvalidArgument,
	NotFound:                  ErrNotFound,
	OrganizationNotFound:      ErrOrganizationNotFound,
	ParentResolutionFailed:    ErrParentResolutionFailed,
	TransientChainUnavailable: ErrTransientChainUnavailable,
}

func newError(message string, statusCode int32, retriable bool) *Error {
	return &Error{
		Message:   message,
		Code:      statusCode,
		Retriable: retriable,
		Details:   nil,
	}
}

// AddErrorDetails returns a copy of err with the detail added, err itself is left untouched
func AddErrorDetails(err *Error, key, description string) *Error {
	clone := *err
	clone.Details = make(map[string]interface{}, len(err.Details)+1)
	for k, v := range err.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = description

	return &clone
}

// ToError maps any error to the catalogue error it wraps. The wrapping chain is kept as the "reason" detail so a
// client can tell e.g. a hash mismatch from a missing document. Unknown errors map to ErrInternalServerError.
func ToError(err error) *Error {
	if err == nil {
		return nil
	}

	var catalogued *Error
	if !stdErrors.As(err, &catalogued) {
		return AddErrorDetails(ErrInternalServerError, "reason", err.Error())
	}

	if err.Error() == catalogued.Message {
		return catalogued
	}

	return AddErrorDetails(catalogued, "reason", err.Error())
}
