package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookline/models"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps sessions as JSON values with a native key TTL, so
// abandoned dialogues expire without a sweeper and sessions survive a
// process restart.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sender string) string {
	return fmt.Sprintf("session:%s", sender)
}

func (r *RedisStore) GetOrCreate(ctx context.Context, sender string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(sender)).Result()
	if err == redis.Nil {
		s := &models.Session{Sender: sender, Step: models.StepWelcome, UpdatedAt: time.Now().UTC()}
		if err := r.Save(ctx, s); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %q: %w", sender, err)
	}
	var s models.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("parse session %q: %w", sender, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *models.Session) error {
	s.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session %q: %w", s.Sender, err)
	}
	if err := r.client.Set(ctx, sessionKey(s.Sender), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %q: %w", s.Sender, err)
	}
	return nil
}

func (r *RedisStore) Reset(ctx context.Context, sender string) (*models.Session, error) {
	s := &models.Session{Sender: sender, Step: models.StepWelcome, UpdatedAt: time.Now().UTC()}
	if err := r.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, sender string) error {
	if err := r.client.Del(ctx, sessionKey(sender)).Err(); err != nil {
		return fmt.Errorf("delete session %q: %w", sender, err)
	}
	return nil
}
