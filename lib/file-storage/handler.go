package filestorage

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	s3client "fleet-tools-backend/s3"
)

// Provider archives version snapshot payloads to object storage so the
// database row can stay small while the full rendered document remains
// retrievable.
type Provider interface {
	ArchiveSnapshot(ctx context.Context, snapshotID string, data []byte) (key string, err error)
	GetArchive(ctx context.Context, key string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	// archiving stays disabled when object storage is not configured,
	// callers must treat a nil Instance as "no archive"
	if s3client.Instance == nil {
		log.Warn("snapshot archiving disabled, object storage is not configured")
		return
	}
	Instance = &impl{
		s3: s3client.Instance,
	}
}

type impl struct {
	s3 s3client.Provider
}

func (i impl) ArchiveSnapshot(ctx context.Context, snapshotID string, data []byte) (key string, err error) {
	key = fmt.Sprintf("versions/%v.json", snapshotID)
	err = i.s3.PutObject(ctx, key, data, "application/json")
	if err != nil {
		return "", err
	}
	return key, nil
}

func (i impl) GetArchive(ctx context.Context, key string) ([]byte, error) {
	return i.s3.GetObject(ctx, key)
}
