package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tour-booking/internal/wizard"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DraftRepository stores in-progress wizard drafts. Drafts are ephemeral:
// they live in Redis under a TTL and deleting one is the wizard's "close",
// which discards everything entered.
type DraftRepository interface {
	Save(ctx context.Context, draft wizard.Draft) error
	Find(ctx context.Context, id string) (*wizard.Draft, error)
	Delete(ctx context.Context, id string) error
}

type draftRepository struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewDraftRepository(rdb *redis.Client, ttlMinutes int, log *zap.Logger) DraftRepository {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &draftRepository{
		rdb: rdb,
		ttl: time.Duration(ttlMinutes) * time.Minute,
		log: log.With(zap.String("repository", "draft")),
	}
}

func draftKey(id string) string {
	return "wizard:draft:" + id
}

func (r *draftRepository) Save(ctx context.Context, draft wizard.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft %s: %w", draft.ID, err)
	}

	if err := r.rdb.Set(ctx, draftKey(draft.ID), data, r.ttl).Err(); err != nil {
		r.log.Error("Failed to save draft",
			zap.Error(err),
			zap.String("draft_id", draft.ID),
		)
		return fmt.Errorf("save draft %s: %w", draft.ID, err)
	}

	return nil
}

func (r *draftRepository) Find(ctx context.Context, id string) (*wizard.Draft, error) {
	data, err := r.rdb.Get(ctx, draftKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find draft",
			zap.Error(err),
			zap.String("draft_id", id),
		)
		return nil, fmt.Errorf("find draft %s: %w", id, err)
	}

	var draft wizard.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft %s: %w", id, err)
	}

	return &draft, nil
}

func (r *draftRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, draftKey(id)).Err(); err != nil {
		r.log.Error("Failed to delete draft",
			zap.Error(err),
			zap.String("draft_id", id),
		)
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	return nil
}
