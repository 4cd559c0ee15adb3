package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"go.uber.org/zap"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	ExistsNewsletterEmail(ctx context.Context, email string) (bool, error)
}

type contactRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewContactRepository(db database.PgxIface, log *zap.Logger) ContactRepository {
	return &contactRepository{
		db:  db,
		log: log.With(zap.String("repository", "contact")),
	}
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, kind, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		contact.ID,
		contact.Kind,
		contact.Name,
		contact.Email,
		contact.Message,
		contact.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create contact",
			zap.Error(err),
			zap.String("kind", string(contact.Kind)),
		)
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

func (r *contactRepository) ExistsNewsletterEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	query := `SELECT COUNT(*) FROM contacts WHERE kind = $1 AND email = $2`
	if err := r.db.QueryRow(ctx, query, entity.ContactKindNewsletter, email).Scan(&count); err != nil {
		r.log.Error("Failed to check newsletter email", zap.Error(err))
		return false, fmt.Errorf("check newsletter email: %w", err)
	}
	return count > 0, nil
}
