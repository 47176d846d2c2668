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

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	log "github.com/sirupsen/logrus"
)

const (
	apiPrefix       = "/api/v1"
	contentTypeJson = "application/json; charset=UTF-8"
)

// Route is one endpoint of a controller
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

type Routes []Route

// Router is implemented by every controller
type Router interface {
	Routes() Routes
}

// NewRouter registers the routes of all controllers
func NewRouter(routers ...Router) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	for _, api := range routers {
		for _, route := range api.Routes() {
			router.
				Methods(route.Method).
				Path(route.Pattern).
				Name(route.Name).
				Handler(route.HandlerFunc)
		}
	}

	return router
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", contentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Failed to encode response: %s", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	apiError := hErrors.ToError(err)
	if apiError.Code >= http.StatusInternalServerError {
		log.Errorf("Request failed: %s", err)
	}

	writeJson(w, int(apiError.Code), apiError)
}
