package redis

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"player-registry/models"
	"player-registry/storage"
)

// Store keeps each player as a JSON string and tracks ids in a set. Filtering
// happens in process with models.PlayerFilter.Matches.
type Store struct {
	client *redis.Client
	cfg    Config
}

func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient wraps an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

var _ storage.PlayerStore = (*Store)(nil)

func (s *Store) Find(ctx context.Context, filter models.PlayerFilter) ([]models.Player, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Player, 0, len(all))
	for _, p := range all {
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Store) Count(ctx context.Context, filter models.PlayerFilter) (int64, error) {
	players, err := s.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(players)), nil
}

func (s *Store) Get(ctx context.Context, id int64) (*models.Player, error) {
	data, err := s.client.Get(ctx, s.playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrPlayerNotFound
		}
		return nil, err
	}
	var p models.Player
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := s.client.Exists(ctx, s.playerKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Save(ctx context.Context, p *models.Player) error {
	if p.ID == 0 {
		id, err := s.client.Incr(ctx, s.seqKey()).Result()
		if err != nil {
			return err
		}
		p.ID = id
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.playerKey(p.ID), data, 0)
	pipe.SAdd(ctx, s.idsKey(), p.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// SetLevel rewrites the record under WATCH so a concurrent Save aborts it.
// A lost race reports false; the next reconcile pass picks the record up again.
func (s *Store) SetLevel(ctx context.Context, id int64, experience, level, untilNext int) (bool, error) {
	key := s.playerKey(id)
	updated := false

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return err
		}
		var p models.Player
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		if p.Experience != experience {
			return nil
		}
		p.Level = level
		p.UntilNextLevel = untilNext
		data, err = json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			updated = true
		}
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return updated, err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.playerKey(id))
	pipe.SRem(ctx, s.idsKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) Close() error {
	return s.client.Close()
}

// loadAll returns every stored player ordered by id.
func (s *Store) loadAll(ctx context.Context) ([]models.Player, error) {
	members, err := s.client.SMembers(ctx, s.idsKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt id %q in %s: %w", m, s.idsKey(), err)
		}
		keys = append(keys, s.playerKey(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]models.Player, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// removed between SMEMBERS and MGET
			continue
		}
		var p models.Player
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	slices.SortFunc(players, func(a, b models.Player) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return players, nil
}
