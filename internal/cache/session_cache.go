package cache

import (
	"containerquote/internal/model"
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Quote sessions are short-lived: abandoned carts expire on their own.
const sessionTTL = 45 * time.Minute

// SessionCache stores active quote sessions in Redis
type SessionCache interface {
	Set(ctx context.Context, session *model.QuoteSession) error
	Get(ctx context.Context, id string) (*model.QuoteSession, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
	}
}

func (c *sessionCache) Set(ctx context.Context, session *model.QuoteSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "quote:session:"+session.ID, data, sessionTTL).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.QuoteSession, error) {
	data, err := c.client.Get(ctx, "quote:session:"+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.QuoteSession
	err = json.Unmarshal([]byte(data), &session)
	return &session, err
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "quote:session:"+id).Err()
}
