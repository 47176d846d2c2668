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
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mtahon/arbor-backend/app/domain/types"
	hErrors "github.com/mtahon/arbor-backend/app/errors"
	"github.com/mtahon/arbor-backend/app/interfaces"
	"github.com/mtahon/arbor-backend/app/persistence/domain"
	"github.com/mtahon/arbor-backend/app/tools"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// selectOrganizationById - Selects the organization row by its id
	selectOrganizationById = `select * from organization where org_id = @org_id`

	selectOrganizations = `select * from organization`
	countOrganizations  = `select count(*) from organization`

	defaultOrder = "proofs_qty desc, name"
	orderLimit   = " order by %s, org_id limit @limit offset @offset"
)

// organizationColumns lists every column of the organization table in insert order
var organizationColumns = []string{
	"org_id",
	"owner",
	"director",
	"director_confirmed",
	"state",
	"parent_org_id",
	"parent_name",
	"parent_proofs_qty",
	"subsidiaries",
	"orgid_type",
	"directory",
	"name",
	"country",
	"logo",
	"contact",
	"lif_deposit",
	"is_lif_proved",
	"is_website_proved",
	"is_ssl_proved",
	"is_social_fb_proved",
	"is_social_tw_proved",
	"is_social_ig_proved",
	"is_social_ln_proved",
	"proofs_qty",
	"org_json_uri",
	"org_json_hash",
	"org_json_content",
	"json_checked_at",
	"json_updated_at",
}

// upsertOrganization - Inserts the organization row, replacing every column of an existing one
var upsertOrganization = buildUpsertOrganization()

// sortableColumns maps the public sort field names to columns
var sortableColumns = map[string]string{
	"country":       "country",
	"directory":     "directory",
	"jsonUpdatedAt": "json_updated_at",
	"lifDeposit":    "lif_deposit",
	"name":          "name",
	"orgid":         "org_id",
	"orgidType":     "orgid_type",
	"parent.orgid":  "parent_org_id",
	"proofsQty":     "proofs_qty",
}

// sortableFields is the sorted list of public sort field names, reported back on an invalid sort
var sortableFields = sortedKeys(sortableColumns)

func sortedKeys(m map[string]string) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// organizationRepository struct that has connection to the Database
type organizationRepository struct {
	dbClient interfaces.DbClient
}

// NewOrganizationRepository creates an instance of a organizationRepository struct
func NewOrganizationRepository(dbClient interfaces.DbClient) interfaces.OrganizationRepository {
	return &organizationRepository{dbClient: dbClient}
}

func (or *organizationRepository) Upsert(ctx context.Context, org *types.Organization) error {
	if org == nil || org.OrgId.IsZero() {
		return hErrors.ErrInvalidArgument
	}

	row := domain.NewOrganization(org)
	args := []interface{}{
		sql.Named("org_id", row.OrgId),
		sql.Named("owner", row.Owner),
		sql.Named("director", row.Director),
		sql.Named("director_confirmed", row.DirectorConfirmed),
		sql.Named("state", row.State),
		sql.Named("parent_org_id", row.ParentOrgId),
		sql.Named("parent_name", row.ParentName),
		sql.Named("parent_proofs_qty", row.ParentProofsQty),
		sql.Named("subsidiaries", row.Subsidiaries),
		sql.Named("orgid_type", row.OrgidType),
		sql.Named("directory", row.Directory),
		sql.Named("name", row.Name),
		sql.Named("country", row.Country),
		sql.Named("logo", row.Logo),
		sql.Named("contact", row.Contact),
		sql.Named("lif_deposit", row.LifDeposit),
		sql.Named("is_lif_proved", row.IsLifProved),
		sql.Named("is_website_proved", row.IsWebsiteProved),
		sql.Named("is_ssl_proved", row.IsSslProved),
		sql.Named("is_social_fb_proved", row.IsSocialFbProved),
		sql.Named("is_social_tw_proved", row.IsSocialTwProved),
		sql.Named("is_social_ig_proved", row.IsSocialIgProved),
		sql.Named("is_social_ln_proved", row.IsSocialLnProved),
		sql.Named("proofs_qty", row.ProofsQty),
		sql.Named("org_json_uri", row.OrgJsonUri),
		sql.Named("org_json_hash", row.OrgJsonHash),
		sql.Named("org_json_content", orgJsonContentArg(row)),
		sql.Named("json_checked_at", row.JsonCheckedAt),
		sql.Named("json_updated_at", row.JsonUpdatedAt),
	}

	db, cancel := or.dbClient.GetDbWithContext(ctx)
	defer cancel()

	if err := db.Exec(upsertOrganization, args...).Error; err != nil {
		return handleDatabaseError(err, nil)
	}

	return nil
}

func (or *organizationRepository) FindById(ctx context.Context, orgId types.OrgId) (*types.Organization, error) {
	db, cancel := or.dbClient.GetDbWithContext(ctx)
	defer cancel()

	row := &domain.Organization{}
	if err := db.Raw(selectOrganizationById, sql.Named("org_id", orgId.Hex())).First(row).Error; err != nil {
		return nil, handleDatabaseError(err, hErrors.ErrOrganizationNotFound)
	}

	org, err := row.ToOrganization()
	if err != nil {
		return nil, handleDatabaseError(err, nil)
	}

	return org, nil
}

func (or *organizationRepository) List(ctx context.Context, query types.OrganizationQuery) (
	[]*types.Organization,
	int64,
	error,
) {
	query = query.Normalize()
	order, err := buildOrder(query.Sort)
	if err != nil {
		return nil, 0, err
	}

	where, args := buildWhere(query)

	db, cancel := or.dbClient.GetDbWithContext(ctx)
	defer cancel()

	var total int64
	if err := db.Raw(countOrganizations+where, args...).Scan(&total).Error; err != nil {
		return nil, 0, handleDatabaseError(err, nil)
	}

	if total == 0 {
		return []*types.Organization{}, 0, nil
	}

	pageArgs := append(args, sql.Named("limit", query.PageSize), sql.Named("offset", query.Offset()))
	rows := make([]domain.Organization, 0)
	if err := db.Raw(selectOrganizations+where+fmt.Sprintf(orderLimit, order), pageArgs...).
		Scan(&rows).Error; err != nil {
		return nil, 0, handleDatabaseError(err, nil)
	}

	orgs := make([]*types.Organization, 0, len(rows))
	for i := range rows {
		org, err := rows[i].ToOrganization()
		if err != nil {
			return nil, 0, handleDatabaseError(err, nil)
		}
		orgs = append(orgs, org)
	}

	return orgs, total, nil
}

// buildWhere returns the where clause of the query and its named arguments. A name filter holding an organization id
// matches the organization and its subsidiaries, one holding an address matches the owner
func buildWhere(query types.OrganizationQuery) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if name := strings.TrimSpace(query.Name); name != "" {
		switch {
		case tools.IsHash32(name):
			conditions = append(conditions, "(org_id = @name_orgid or parent_org_id = @name_parent)")
			args = append(args, sql.Named("name_orgid", strings.ToLower(name)),
				sql.Named("name_parent", strings.ToLower(name)))
		case common.IsHexAddress(name):
			conditions = append(conditions, "owner = @name_owner")
			args = append(args, sql.Named("name_owner", strings.ToLower(common.HexToAddress(name).Hex())))
		default:
			conditions = append(conditions, "name ilike @name")
			args = append(args, sql.Named("name", "%"+escapeLike(name)+"%"))
		}
	}

	if query.Kind != "" {
		conditions = append(conditions, "orgid_type = @orgid_type")
		args = append(args, sql.Named("orgid_type", string(query.Kind)))
	}

	if query.Directory != "" {
		conditions = append(conditions, "directory = @directory")
		args = append(args, sql.Named("directory", query.Directory))
	}

	if query.Country != "" {
		conditions = append(conditions, "country = @country")
		args = append(args, sql.Named("country", strings.ToUpper(query.Country)))
	}

	if query.Owner != nil {
		conditions = append(conditions, "owner = @owner")
		args = append(args, sql.Named("owner", strings.ToLower(query.Owner.Hex())))
	}

	if query.ParentOrgId != "" {
		conditions = append(conditions, "parent_org_id = @parent_org_id")
		args = append(args, sql.Named("parent_org_id", strings.ToLower(query.ParentOrgId)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " where " + strings.Join(conditions, " and "), args
}

func buildOrder(fields []types.SortField) (string, error) {
	if len(fields) == 0 {
		return defaultOrder, nil
	}

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		column, ok := sortableColumns[field.Field]
		if !ok {
			invalid := hErrors.AddErrorDetails(hErrors.ErrInvalidArgument, "sort", field.Field)
			return "", hErrors.AddErrorDetails(invalid, "sortable", strings.Join(sortableFields, ","))
		}

		if field.Descending {
			column += " desc"
		}
		terms = append(terms, column)
	}

	return strings.Join(terms, ", "), nil
}

func buildUpsertOrganization() string {
	params := make([]string, 0, len(organizationColumns))
	updates := make([]string, 0, len(organizationColumns)-1)
	for _, column := range organizationColumns {
		params = append(params, "@"+column)
		if column != "org_id" {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", column, column))
		}
	}

	return fmt.Sprintf(
		"insert into organization (%s) values (%s) on conflict (org_id) do update set %s",
		strings.Join(organizationColumns, ", "),
		strings.Join(params, ", "),
		strings.Join(updates, ", "),
	)
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func orgJsonContentArg(row *domain.Organization) interface{} {
	if len(row.OrgJsonContent) == 0 {
		return nil
	}

	return string(row.OrgJsonContent)
}
