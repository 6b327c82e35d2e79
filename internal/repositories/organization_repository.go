package repositories

import (
	"context"
	"database/sql"

	"soundstageBack/internal/models"
)

type OrganizationRepository struct {
	DB *sql.DB
}

// SearchOrganizations returns up to limit active organizations matching the query.
func (r *OrganizationRepository) SearchOrganizations(ctx context.Context, query string, limit int) ([]models.Organization, error) {
	b := &condBuilder{}
	b.add("status = 'active'")
	b.matchAny(query, "name", "description", "city", "state")

	q := `
                SELECT id, name, description, org_type, city, state, logo_url,
                       member_count, created_at
                FROM organizations` + b.where() + `
                ORDER BY member_count DESC, name ASC
                LIMIT ` + b.bind(limit)

	rows, err := r.DB.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		var org models.Organization
		if err := rows.Scan(
			&org.ID, &org.Name, &org.Description, &org.OrgType, &org.City,
			&org.State, &org.LogoURL, &org.MemberCount, &org.CreatedAt,
		); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}
