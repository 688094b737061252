package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emekaobi/storefront-backend/models"
)

// Persister stores cart contents between requests so a session survives a
// process restart. The in-memory Store stays authoritative; persistence is
// write-behind.
type Persister interface {
	Load(ctx context.Context, sessionID string) ([]models.CartItem, error)
	Save(ctx context.Context, sessionID string, items []models.CartItem) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisPersister keeps each session's cart as a JSON blob with a TTL.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

func (p *RedisPersister) key(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	data, err := p.client.Get(ctx, p.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (p *RedisPersister) Save(ctx context.Context, sessionID string, items []models.CartItem) error {
	cart := models.Cart{
		SessionID: sessionID,
		Items:     items,
		UpdatedAt: time.Now(),
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.key(sessionID), data, p.ttl).Err()
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	return p.client.Del(ctx, p.key(sessionID)).Err()
}
