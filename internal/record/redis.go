package record

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis stores each collection under a single namespaced key. Collections
// are small (30-account ceiling) so whole-value GET/SET matches the
// full-overwrite contract exactly.
type Redis struct {
	client    *redis.Client
	namespace string
}

// NewRedis connects to the given redis:// URL and verifies the
// connection with a ping.
func NewRedis(url, namespace string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, namespace: namespace}, nil
}

func (r *Redis) key(collection string) string {
	if r.namespace == "" {
		return collection
	}
	return r.namespace + ":" + collection
}

func (r *Redis) Get(ctx context.Context, collection string) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.key(collection)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", collection, err)
	}
	return raw, nil
}

func (r *Redis) Put(ctx context.Context, collection string, data []byte) error {
	if data == nil {
		if err := r.client.Del(ctx, r.key(collection)).Err(); err != nil {
			return fmt.Errorf("del %s: %w", collection, err)
		}
		return nil
	}
	if err := r.client.Set(ctx, r.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", collection, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
