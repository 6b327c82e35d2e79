package repositories

import (
	"context"
	"database/sql"

	"soundstageBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

// SearchProfiles returns up to limit public competitor profiles matching the query.
func (r *UserRepository) SearchProfiles(ctx context.Context, query string, limit int) ([]models.Profile, error) {
	b := &condBuilder{}
	b.add("is_public_profile = TRUE")
	b.matchAny(query, "display_name", "bio", "city", "state", "team_name")

	q := `
                SELECT id, display_name, bio, avatar_url, city, state, team_name, created_at
                FROM profiles` + b.where() + `
                ORDER BY display_name ASC
                LIMIT ` + b.bind(limit)

	rows, err := r.DB.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(
			&profile.ID, &profile.DisplayName, &profile.Bio, &profile.AvatarURL,
			&profile.City, &profile.State, &profile.TeamName, &profile.CreatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
