package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/storage"
)

// Storage is a Redis-backed implementation of the RoomStore interface.
// CompareAndSet uses Redis optimistic transactions (WATCH/MULTI/EXEC),
// so exactly one concurrent writer per version succeeds.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrTransient, err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Client exposes the underlying connection so the event bus can share it
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Ensure Storage implements the interface
var _ storage.RoomStore = (*Storage)(nil)

// transient marks raw Redis I/O failures as retryable for callers
func transient(err error) error {
	return fmt.Errorf("%w: %v", model.ErrTransient, err)
}

func (s *Storage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.OpTimeout)
}

func (s *Storage) Get(ctx context.Context, id model.RoomID) (*model.Room, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, transient(err)
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) Insert(ctx context.Context, room *model.Room) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, roomKey(room.ID), data, s.cfg.RoomTTL).Result()
	if err != nil {
		return transient(err)
	}
	if !ok {
		return model.ErrRoomExists
	}

	// Index the room under its status for listing
	idx := statusIndexKey(room.Status)
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, idx, string(room.ID))
	pipe.Expire(ctx, idx, s.cfg.RoomTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return transient(err)
	}
	return nil
}

func (s *Storage) CompareAndSet(ctx context.Context, expectedVersion int64, room *model.Room) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	key := roomKey(room.ID)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrRoomNotFound
			}
			return transient(err)
		}

		var current model.Room
		if err := json.Unmarshal(data, &current); err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return model.ErrVersionConflict
		}

		room.Version = expectedVersion + 1
		payload, err := json.Marshal(room)
		if err != nil {
			return err
		}

		// The write only commits if the watched key is untouched
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.cfg.RoomTTL)
			if current.Status != room.Status {
				pipe.SRem(ctx, statusIndexKey(current.Status), string(room.ID))
				newIdx := statusIndexKey(room.Status)
				pipe.SAdd(ctx, newIdx, string(room.ID))
				pipe.Expire(ctx, newIdx, s.cfg.RoomTTL)
			}
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Key changed between WATCH and EXEC: same outcome as a
		// version mismatch, the caller must re-read and retry
		return model.ErrVersionConflict
	}
	return err
}

func (s *Storage) Delete(ctx context.Context, id model.RoomID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// Remove the record and any index membership
	pipe := s.client.Pipeline()
	pipe.Del(ctx, roomKey(id))
	for _, status := range []model.RoomStatus{model.RoomStatusWaiting, model.RoomStatusPlaying, model.RoomStatusFinished} {
		pipe.SRem(ctx, statusIndexKey(status), string(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return transient(err)
	}
	return nil
}

func (s *Storage) Exists(ctx context.Context, id model.RoomID) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	n, err := s.client.Exists(ctx, roomKey(id)).Result()
	if err != nil {
		return false, transient(err)
	}
	return n > 0, nil
}

func (s *Storage) ListByStatusSince(ctx context.Context, status model.RoomStatus, since time.Time) ([]*model.Room, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	ids, err := s.client.SMembers(ctx, statusIndexKey(status)).Result()
	if err != nil {
		return nil, transient(err)
	}
	if len(ids) == 0 {
		return []*model.Room{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roomKey(model.RoomID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, transient(err)
	}

	rooms := make([]*model.Room, 0, len(values))
	var expired []any
	for i, val := range values {
		if val == nil {
			// Record expired out from under the index
			expired = append(expired, ids[i])
			continue
		}
		var room model.Room
		if err := json.Unmarshal([]byte(val.(string)), &room); err != nil {
			continue // Skip invalid data
		}
		if room.Status != status || room.UpdatedAt.Before(since) {
			continue
		}
		rooms = append(rooms, &room)
	}

	if len(expired) > 0 {
		_ = s.client.SRem(ctx, statusIndexKey(status), expired...).Err()
	}

	return rooms, nil
}
