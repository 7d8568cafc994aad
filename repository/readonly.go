package repository

import "context"

// ReadOnly wraps kv so that Put and Delete are dropped. Reporting commands load
// through it so that defaults are never written back.
func ReadOnly(kv KVStore) KVStore {
	return readOnly{KVStore: kv}
}

type readOnly struct {
	KVStore
}

func (readOnly) Put(context.Context, string, []byte) error { return nil }

func (readOnly) Delete(context.Context, string) error { return nil }
