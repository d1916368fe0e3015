package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
)

// DefaultRedisNamespace prefixes the settings hash and change channel.
const DefaultRedisNamespace = "quicktiles"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	// URL is a redis:// or rediss:// connection URL.
	URL string
	// Namespace prefixes keys; defaults to DefaultRedisNamespace.
	Namespace string
}

// RedisStore keeps settings in a Redis hash and announces changes on a
// pub/sub channel, so every process sharing the hash re-lays out together.
type RedisStore struct {
	client  *redis.Client
	hashKey string
	channel string
	owned   bool
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if err := qterrors.ValidateURL(cfg.URL, "redis", "rediss"); err != nil {
		return nil, err
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, qterrors.Wrap(qterrors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, qterrors.Wrap(qterrors.ErrCodeSettings, err, "connect to redis")
	}
	s := NewRedisStoreWithClient(client, cfg.Namespace)
	s.owned = true
	return s, nil
}

// NewRedisStoreWithClient wraps an existing client. Close leaves the client open.
func NewRedisStoreWithClient(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = DefaultRedisNamespace
	}
	return &RedisStore{
		client:  client,
		hashKey: namespace + ":settings",
		channel: namespace + ":settings:changes",
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.hashKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget: %w", err)
	}
	return v, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	if err := qterrors.ValidateSettingKey(key); err != nil {
		return err
	}
	return s.write(ctx, Change{Key: key, Value: value}, func(p redis.Pipeliner) {
		p.HSet(ctx, s.hashKey, key, value)
	})
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.write(ctx, Change{Key: key, Deleted: true}, func(p redis.Pipeliner) {
		p.HDel(ctx, s.hashKey, key)
	})
}

// write applies op and publishes c in one MULTI/EXEC transaction.
func (s *RedisStore) write(ctx context.Context, c Change, op func(redis.Pipeliner)) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		op(p)
		p.Publish(ctx, s.channel, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write %s: %w", c.Key, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) (map[string]string, error) {
	m, err := s.client.HGetAll(ctx, s.hashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	return m, nil
}

// Watch subscribes to the change channel. Messages that fail to decode are
// delivered as a full re-read (empty Key).
func (s *RedisStore) Watch(ctx context.Context) (<-chan Change, error) {
	sub := s.client.Subscribe(ctx, s.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan Change, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var c Change
				if err := json.Unmarshal([]byte(msg.Payload), &c); err != nil {
					c = Change{}
				}
				select {
				case out <- c:
				default:
				}
			}
		}
	}()
	return out, nil
}

// Close closes the client if the store created it.
func (s *RedisStore) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
