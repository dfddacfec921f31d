package cart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	pkgredis "github.com/tailorline/storefront/pkg/redis"
)

// ErrNotFound is returned by a Storage when nothing is stored under a key.
var ErrNotFound = errors.New("cart not found")

// Storage persists the serialized cart under a single key.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// FileStorage keeps one JSON document per key inside Dir.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{Dir: dir}
}

func (s *FileStorage) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid cart key %q", key)
	}
	return filepath.Join(s.Dir, key+".json"), nil
}

func (s *FileStorage) Load(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}
	return data, nil
}

// Save writes through a temp file and rename so readers never see a partial cart.
func (s *FileStorage) Save(_ context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cart file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cart file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cart file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}

// RedisStorage keeps carts in redis under the cart namespace.
type RedisStorage struct {
	store pkgredis.CartStore
	ttl   time.Duration
}

// NewRedisStorage returns a redis backed Storage; ttl of zero keeps carts forever.
func NewRedisStorage(store pkgredis.CartStore, ttl time.Duration) *RedisStorage {
	return &RedisStorage{store: store, ttl: ttl}
}

func (s *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if s.store == nil {
		return nil, errors.New("redis cart store not configured")
	}
	value, err := s.store.Get(ctx, s.store.CartKey(key))
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart from redis: %w", err)
	}
	return []byte(value), nil
}

func (s *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	if s.store == nil {
		return errors.New("redis cart store not configured")
	}
	if err := s.store.Set(ctx, s.store.CartKey(key), string(data), s.ttl); err != nil {
		return fmt.Errorf("save cart to redis: %w", err)
	}
	return nil
}
