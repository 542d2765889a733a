package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
	"phonebook/pkg/platform/sentinel"
)

const (
	// DefaultRedisKey is the hash holding id -> JSON contact.
	DefaultRedisKey = "phonebook:contacts"

	seqSuffix    = ":seq"
	maxTxRetries = 8
)

// redisContact is the stored form; Seq keeps List in creation order.
type redisContact struct {
	models.Contact
	Seq int64 `json:"seq"`
}

// Redis stores the directory in a single hash guarded by optimistic transactions.
type Redis struct {
	client *redis.Client
	key    string
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithRedisKey overrides the hash key, mainly to isolate tests.
func WithRedisKey(key string) RedisOption {
	return func(s *Redis) {
		if key != "" {
			s.key = key
		}
	}
}

// NewRedis constructs a Redis-backed directory.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	s := &Redis{client: client, key: DefaultRedisKey}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Redis) List(ctx context.Context) ([]*models.Contact, error) {
	all, err := s.loadAll(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	contacts := make([]*models.Contact, 0, len(all))
	for i := range all {
		contacts = append(contacts, &all[i].Contact)
	}
	return contacts, nil
}

func (s *Redis) Get(ctx context.Context, contactID id.ContactID) (*models.Contact, error) {
	raw, err := s.client.HGet(ctx, s.key, contactID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	rc, err := decodeRedisContact(raw)
	if err != nil {
		return nil, err
	}
	return &rc.Contact, nil
}

// Create watches the hash, checks name then number, and writes inside MULTI.
func (s *Redis) Create(ctx context.Context, c *models.Contact) error {
	seq, err := s.client.Incr(ctx, s.key+seqSuffix).Result()
	if err != nil {
		return fmt.Errorf("allocate sequence: %w", err)
	}
	payload, err := json.Marshal(redisContact{Contact: *c, Seq: seq})
	if err != nil {
		return fmt.Errorf("encode contact: %w", err)
	}
	return s.retry(ctx, func(tx *redis.Tx) error {
		all, err := s.loadAll(ctx, tx)
		if err != nil {
			return err
		}
		for _, existing := range all {
			if existing.Name == c.Name {
				return ErrNameTaken
			}
		}
		for _, existing := range all {
			if existing.Number == c.Number {
				return ErrNumberTaken
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.key, c.ID.String(), payload)
			return nil
		})
		return err
	})
}

func (s *Redis) UpdateNumber(ctx context.Context, contactID id.ContactID, number string) (*models.Contact, error) {
	var updated models.Contact
	err := s.retry(ctx, func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, s.key, contactID.String()).Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		rc, err := decodeRedisContact(raw)
		if err != nil {
			return err
		}
		rc.Contact = rc.Contact.WithNumber(number)
		payload, err := json.Marshal(rc)
		if err != nil {
			return fmt.Errorf("encode contact: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.key, contactID.String(), payload)
			return nil
		})
		if err == nil {
			updated = rc.Contact
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Redis) Delete(ctx context.Context, contactID id.ContactID) (bool, error) {
	n, err := s.client.HDel(ctx, s.key, contactID.String()).Result()
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	return n > 0, nil
}

func (s *Redis) Count(ctx context.Context) (int, error) {
	n, err := s.client.HLen(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return int(n), nil
}

// retry runs fn under WATCH until it commits or a non-transactional error occurs.
func (s *Redis) retry(ctx context.Context, fn func(tx *redis.Tx) error) error {
	for range maxTxRetries {
		err := s.client.Watch(ctx, fn, s.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) && !errors.Is(err, sentinel.ErrConflict) {
			return fmt.Errorf("redis transaction: %w", err)
		}
		return err
	}
	return fmt.Errorf("redis transaction: %w", sentinel.ErrUnavailable)
}

type hashValuer interface {
	HVals(ctx context.Context, key string) *redis.StringSliceCmd
}

func (s *Redis) loadAll(ctx context.Context, c hashValuer) ([]redisContact, error) {
	raw, err := c.HVals(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	all := make([]redisContact, 0, len(raw))
	for _, v := range raw {
		rc, err := decodeRedisContact(v)
		if err != nil {
			return nil, err
		}
		all = append(all, rc)
	}
	slices.SortFunc(all, func(a, b redisContact) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return all, nil
}

func decodeRedisContact(raw string) (redisContact, error) {
	var rc redisContact
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return redisContact{}, fmt.Errorf("decode contact: %w", err)
	}
	return rc, nil
}
