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
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
)

const (
	orgIdVar          = "orgid"
	organizationsPath = apiPrefix + "/orgids"
	organizationPath  = organizationsPath + "/{" + orgIdVar + "}"
	refreshPath       = organizationPath + "/refresh"
)

type organizationController struct {
	organizations interfaces.OrganizationRepository
	refresher     interfaces.Refresher
}

// NewOrganizationController serves the directory records and on demand refreshes
func NewOrganizationController(
	organizations interfaces.OrganizationRepository,
	refresher interfaces.Refresher,
) Router {
	return &organizationController{
		organizations: organizations,
		refresher:     refresher,
	}
}

func (c *organizationController) Routes() Routes {
	return Routes{
		{"listOrganizations", http.MethodGet, organizationsPath, c.List},
		{"getOrganization", http.MethodGet, organizationPath, c.Get},
		{"refreshOrganization", http.MethodPost, refreshPath, c.Refresh},
	}
}

// List implements GET /api/v1/orgids
func (c *organizationController) List(w http.ResponseWriter, r *http.Request) {
	query, err := parseOrganizationQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	organizations, total, err := c.organizations.List(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	query = query.Normalize()
	data := make([]*organization, 0, len(organizations))
	for _, org := range organizations {
		data = append(data, newOrganization(org, false))
	}

	writeJson(w, http.StatusOK, &organizationListResponse{
		Links: links{Self: selfLink(r)},
		Meta:  listMeta{PageNumber: query.PageNumber, PageSize: query.PageSize, Total: total},
		Data:  data,
	})
}

// Get implements GET /api/v1/orgids/{orgid}
func (c *organizationController) Get(w http.ResponseWriter, r *http.Request) {
	orgId, err := orgIdFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c.writeOrganization(w, r, orgId)
}

// Refresh implements POST /api/v1/orgids/{orgid}/refresh, it resolves the organization again and returns the stored
// record
func (c *organizationController) Refresh(w http.ResponseWriter, r *http.Request) {
	orgId, err := orgIdFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := c.refresher.RefreshOne(r.Context(), orgId); err != nil {
		writeError(w, err)
		return
	}

	c.writeOrganization(w, r, orgId)
}

func (c *organizationController) writeOrganization(w http.ResponseWriter, r *http.Request, orgId types.OrgId) {
	org, err := c.organizations.FindById(r.Context(), orgId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, &organizationResponse{
		Links: links{Self: selfLink(r)},
		Data:  newOrganization(org, true),
	})
}

func orgIdFromPath(r *http.Request) (types.OrgId, error) {
	value := mux.Vars(r)[orgIdVar]
	orgId, err := types.NewOrgIdFromString(value)
	if err != nil {
		return types.ZeroOrgId, hErrors.AddErrorDetails(hErrors.ErrInvalidArgument, orgIdVar, value)
	}

	return orgId, nil
}

// parseOrganizationQuery reads the filters, page[number], page[size] and sort parameters
func parseOrganizationQuery(values url.Values) (types.OrganizationQuery, error) {
	query := types.OrganizationQuery{
		Name:        values.Get("name"),
		Kind:        types.OrganizationKind(values.Get("orgidType")),
		Directory:   values.Get("directory"),
		Country:     values.Get("country"),
		ParentOrgId: values.Get("parent.orgid"),
	}

	if owner := values.Get("owner"); owner != "" {
		if !common.IsHexAddress(owner) {
			return query, hErrors.AddErrorDetails(hErrors.ErrInvalidArgument, "owner", owner)
		}
		address := common.HexToAddress(owner)
		query.Owner = &address
	}

	var err error
	if query.PageNumber, err = intParam(values, "page[number]"); err != nil {
		return query, err
	}
	if query.PageSize, err = intParam(values, "page[size]"); err != nil {
		return query, err
	}

	query.Sort = parseSort(values.Get("sort"))
	return query, nil
}

func intParam(values url.Values, name string) (int, error) {
	value := values.Get(name)
	if value == "" {
		return 0, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, hErrors.AddErrorDetails(hErrors.ErrInvalidArgument, name, value)
	}

	return parsed, nil
}

// parseSort reads a comma separated field list, a leading '-' sorts descending
func parseSort(value string) []types.SortField {
	var fields []types.SortField
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if field == "" {
			continue
		}

		fields = append(fields, types.SortField{Field: field, Descending: descending})
	}

	return fields
}

func selfLink(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host + r.URL.RequestURI()
}
