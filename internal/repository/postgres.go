package repository

import (
	"context"
	"fmt"

	"github.com/EnzoLavieri/QualABoa-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements partner establishment lookups against PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// FindPartnersNear returns partner establishments within radiusMeters of the
// given coordinates, nearest first. Distance is geodesic: the geom column is a
// GEOGRAPHY(POINT, 4326), so ST_DWithin measures meters on the spheroid.
// Rows without coordinates are excluded.
func (r *Repository) FindPartnersNear(ctx context.Context, lat, lng float64, radiusMeters int) ([]models.Establishment, error) {
	sql := `
		SELECT
			id,
			place_id,
			nome,
			descricao,
			endereco_formatado,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM estabelecimentos
		WHERE parceiro = TRUE
		  AND geom IS NOT NULL
		  AND ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
	`

	rows, err := r.db.Query(ctx, sql, lat, lng, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute radius query: %w", err)
	}
	defer rows.Close()

	var partners []models.Establishment
	for rows.Next() {
		e := models.Establishment{Parceiro: true}
		err := rows.Scan(
			&e.ID,
			&e.PlaceID,
			&e.Nome,
			&e.Descricao,
			&e.EnderecoFormatado,
			&e.Latitude,
			&e.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan establishment: %w", err)
		}
		partners = append(partners, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return partners, nil
}
