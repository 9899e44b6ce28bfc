package bookedslots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "booked_slots"

// Cache кеш множеств занятых слотов (комната + дата) в Redis.
// Значение - JSON-массив идентификаторов слотов, пустой массив тоже кешируется.
// Cache с nil-клиентом всегда возвращает промах и ничего не сохраняет.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// New создает кеш занятых слотов с указанным TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return NewWithCmdable(nil, ttl)
	}
	return NewWithCmdable(client, ttl)
}

// NewWithCmdable создает кеш поверх любого клиента go-redis (кластер, кольцо)
func NewWithCmdable(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Enabled сообщает, подключён ли Redis
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get возвращает закешированное множество. found=false при промахе.
func (c *Cache) Get(ctx context.Context, roomKey, date string) ([]string, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}

	val, err := c.client.Get(ctx, Key(roomKey, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrCacheUnavailable, err)
	}

	slots, err := decode(val)
	if err != nil {
		return nil, false, err
	}
	return slots, true, nil
}

// Set сохраняет множество занятых слотов
func (c *Cache) Set(ctx context.Context, roomKey, date string, slots []string) error {
	if !c.Enabled() {
		return nil
	}

	data, err := encode(slots)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, Key(roomKey, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Invalidate удаляет множество после создания или отмены бронирования
func (c *Cache) Invalidate(ctx context.Context, roomKey, date string) error {
	if !c.Enabled() {
		return nil
	}

	if err := c.client.Del(ctx, Key(roomKey, date)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Key ключ Redis для комнаты и даты: booked_slots:{room}:{YYYY-MM-DD}
func Key(roomKey, date string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, roomKey, date)
}

func encode(slots []string) ([]byte, error) {
	if slots == nil {
		slots = []string{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrCorruptedEntry, err)
	}
	return data, nil
}

func decode(data []byte) ([]string, error) {
	var slots []string
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCorruptedEntry, err)
	}
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}
