package repository

import "context"

// KVStore is the namespaced key/value storage the persisted collections mirror
// themselves into. Get returns domain.ErrKeyNotFound for absent keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Storage keys. The version suffix allows schema changes by switching keys.
const (
	KeyTasks        = "taskup_tasks_v1"
	KeyGroups       = "taskup_groups_v1"
	KeyParticipants = "taskup_participants_v1"
	KeyUser         = "taskup_user_v1"
	KeyCredentials  = "taskup_credentials_v1"
)
