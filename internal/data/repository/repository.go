package repository

import (
	"tour-booking/pkg/database"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type Repository struct {
	Tour    TourRepository
	Booking BookingRepository
	Outbox  OutboxRepository
	Contact ContactRepository
	Draft   DraftRepository
}

func NewRepository(db database.PgxIface, rdb *redis.Client, draftTTLMinutes int, log *zap.Logger) *Repository {
	return &Repository{
		Tour:    NewTourRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Outbox:  NewOutboxRepository(db, log),
		Contact: NewContactRepository(db, log),
		Draft:   NewDraftRepository(rdb, draftTTLMinutes, log),
	}
}
