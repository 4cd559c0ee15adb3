package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TourRepository interface {
	FindAllPublished(ctx context.Context) ([]*entity.Tour, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Tour, error)
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

const tourColumns = `id, slug, title, description, base_price, duration_days,
		duration_nights, start_city, end_city, published, sort_order, created_at, updated_at`

func scanTour(row pgx.Row) (*entity.Tour, error) {
	var t entity.Tour
	err := row.Scan(
		&t.ID,
		&t.Slug,
		&t.Title,
		&t.Description,
		&t.BasePrice,
		&t.DurationDays,
		&t.DurationNights,
		&t.StartCity,
		&t.EndCity,
		&t.Published,
		&t.SortOrder,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tourRepository) FindAllPublished(ctx context.Context) ([]*entity.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE published = TRUE
		ORDER BY sort_order ASC, title ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list published tours", zap.Error(err))
		return nil, fmt.Errorf("list published tours: %w", err)
	}
	defer rows.Close()

	var tours []*entity.Tour
	for rows.Next() {
		tour, err := scanTour(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tour: %w", err)
		}
		tours = append(tours, tour)
	}

	return tours, rows.Err()
}

func (r *tourRepository) FindBySlug(ctx context.Context, slug string) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE slug = $1`

	tour, err := scanTour(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find tour by slug %s: %w", slug, err)
	}

	return tour, nil
}
