package database

import (
	"context"
	"encoding/json"
	"fmt"
	"healthdash/config"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Logical cache databases, one valkey DB index per concern.
const (
	cacheDBGeneral = 0
	cacheDBSession = 1
	cacheDBUser    = 2
	cacheDBMetric  = 3
	cacheDBEvents  = 4
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	if config.DatabaseCacheAddress == "" || config.DatabaseCachePort == 0 {
		return log.Error("cache address or port is empty",
			"address", config.DatabaseCacheAddress,
			"port", config.DatabaseCachePort)
	}

	address := fmt.Sprintf("%s:%d", config.DatabaseCacheAddress, config.DatabaseCachePort)

	clients := []struct {
		target *CacheClient
		db     int
		name   string
	}{
		{&s.Cache.General, cacheDBGeneral, "General"},
		{&s.Cache.Session, cacheDBSession, "Session"},
		{&s.Cache.User, cacheDBUser, "User"},
		{&s.Cache.Metric, cacheDBMetric, "Metric"},
		{&s.Cache.Events, cacheDBEvents, "Events"},
	}

	for _, c := range clients {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{address},
			SelectDB:    c.db,
		})
		if err != nil {
			return log.Err("failed to create cache client", err, "cache", c.name)
		}
		*c.target = client
	}

	log.Info("Cache clients initialized", "address", address)
	return nil
}

// CacheBuilder is a fluent helper for single-key cache operations. A nil
// client degrades to a miss/no-op so the SQL path works without a cache tier.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  any
	ttl    time.Duration
	ctx    context.Context
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) Set() error {
	if b.client == nil {
		return nil
	}

	payload, err := json.Marshal(b.value)
	if err != nil {
		return err
	}

	cmd := b.client.B().Set().Key(b.key).Value(string(payload))
	if b.ttl > 0 {
		return b.client.Do(b.ctx, cmd.Ex(b.ttl).Build()).Error()
	}
	return b.client.Do(b.ctx, cmd.Build()).Error()
}

// Get unmarshals the cached value into dest. The boolean reports whether the
// key was present.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.client == nil {
		return false, nil
	}

	resp := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	payload, err := resp.AsBytes()
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}

	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return nil
	}
	return b.client.Do(b.ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
