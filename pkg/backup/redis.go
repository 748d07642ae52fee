// pkg/backup/redis.go
//
// Redis-backed Store for deployments where the admin console runs on more
// than one workstation. Backups live in a hash keyed by id, the audit log
// in an append-only list.

package backup

import (
	"context"
	"encoding/json"
	"sort"

	cerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

const (
	redisBackupsKey = "metis:policy_backups"
	redisAuditKey   = "metis:policy_restore_audit"
)

type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the given redis URL (redis://host:port/db).
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, cerr.Wrap(err, "parsing redis url")
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) SaveBackup(ctx context.Context, b *Backup) error {
	data, err := json.Marshal(b)
	if err != nil {
		return cerr.Wrap(err, "encoding backup")
	}
	return s.client.HSet(ctx, redisBackupsKey, b.ID, data).Err()
}

func (s *RedisStore) ListBackups(ctx context.Context) ([]*Backup, error) {
	raw, err := s.client.HGetAll(ctx, redisBackupsKey).Result()
	if err != nil {
		return nil, cerr.Wrap(err, "listing backups")
	}

	all := make([]*Backup, 0, len(raw))
	for _, data := range raw {
		var b Backup
		if err := json.Unmarshal([]byte(data), &b); err != nil {
			return nil, cerr.Wrap(err, "parsing stored backup")
		}
		all = append(all, &b)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedDateTime.After(all[j].CreatedDateTime)
	})
	return all, nil
}

func (s *RedisStore) DeleteBackup(ctx context.Context, id string) error {
	// HDel of a missing field is already a no-op, matching the contract.
	return s.client.HDel(ctx, redisBackupsKey, id).Err()
}

func (s *RedisStore) AppendAuditEntry(ctx context.Context, e *AuditEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return cerr.Wrap(err, "encoding audit entry")
	}
	return s.client.RPush(ctx, redisAuditKey, data).Err()
}

func (s *RedisStore) ListAuditEntries(ctx context.Context) ([]*AuditEntry, error) {
	raw, err := s.client.LRange(ctx, redisAuditKey, 0, -1).Result()
	if err != nil {
		return nil, cerr.Wrap(err, "listing audit entries")
	}

	// Stored oldest-first; return newest-first.
	all := make([]*AuditEntry, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var e AuditEntry
		if err := json.Unmarshal([]byte(raw[i]), &e); err != nil {
			return nil, cerr.Wrap(err, "parsing stored audit entry")
		}
		all = append(all, &e)
	}
	return all, nil
}
