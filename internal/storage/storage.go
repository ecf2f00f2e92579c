// Package storage persists generated documents (invoices, label
// sheets) either in MinIO or on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jakubrevaj/Matratex/internal/config"
)

// DocumentStore writes and reads generated PDF documents.
type DocumentStore interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) error
	Get(ctx context.Context, objectName string) (io.ReadCloser, error)
}

// New picks the store from configuration: a local directory when
// LocalDir is set, MinIO otherwise.
func New(cfg config.MinIOConfig) (DocumentStore, error) {
	if cfg.LocalDir != "" {
		if err := os.MkdirAll(cfg.LocalDir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		return &LocalStore{dir: cfg.LocalDir}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}
	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

type MinIOStore struct {
	client *minio.Client
	bucket string
}

func (s *MinIOStore) Put(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", objectName, err)
	}
	return nil
}

func (s *MinIOStore) Get(ctx context.Context, objectName string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", objectName, err)
	}
	return object, nil
}

type LocalStore struct {
	dir string
}

func (s *LocalStore) Put(_ context.Context, objectName string, data []byte, _ string) error {
	path := filepath.Join(s.dir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", objectName, err)
	}
	return nil
}

func (s *LocalStore) Get(_ context.Context, objectName string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(objectName)))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", objectName, err)
	}
	return f, nil
}
