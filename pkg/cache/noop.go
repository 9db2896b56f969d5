package cache

import (
	"context"
	"time"
)

type noopService struct{}

// NewNoopService returns a Service that never stores anything; every GetOrSet goes to the fetcher
func NewNoopService() Service {
	return noopService{}
}

func (noopService) Get(ctx context.Context, key string, dest interface{}) error {
	return ErrCacheMiss
}

func (noopService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noopService) Delete(ctx context.Context, key string) error { return nil }

func (noopService) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (noopService) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	data, err := fetcher()
	if err != nil {
		return err
	}
	return copyInto(data, dest)
}

func (noopService) Ping(ctx context.Context) error { return nil }
