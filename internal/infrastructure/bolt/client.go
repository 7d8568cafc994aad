package bolt

import (
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// DefaultBucket holds every TaskUp key.
const DefaultBucket = "taskup"

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string, logger *zap.Logger) (*bbolt.DB, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("opened bolt store", zap.String("path", path), zap.String("bucket", bucket))
	return db, nil
}
