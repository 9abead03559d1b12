package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	a "devjobs/board-api/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

const minMultipartSize = 12 << 20

// FileStore persists uploaded files (profile images and CVs) under
// an opaque name. URL reports where a stored file can be fetched
// from: redirect == true means the returned location is an external
// URL to redirect to, false means it's a local path to stream
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	URL(name string) (location string, redirect bool)
}

// NewFileStore picks the storage backend configured under
// storage.type
func NewFileStore() (FileStore, error) {
	switch viper.GetString("storage.type") {
	case "s3":
		client, err := a.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		return &S3Store{
			Client: client,
			CDNUrl: viper.GetString("storage.cdn_url"),
		}, nil
	default:
		return &LocalStore{Dir: viper.GetString("storage.local_path")}, nil
	}
}

type S3Store struct {
	Client *a.S3Client
	CDNUrl string
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:        s.Client.Bucket,
		Key:           aws.String(name),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}

	if size > minMultipartSize {
		uploader := manager.NewUploader(s.Client.C, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 6 << 20
		})

		_, err := uploader.Upload(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to upload to s3, %w", err)
		}

		return nil
	}

	_, err := s.Client.C.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload to s3, %w", err)
	}

	return nil
}

func (s *S3Store) URL(name string) (string, bool) {
	return s.CDNUrl + "/" + name, true
}

type LocalStore struct {
	Dir string
}

func (l *LocalStore) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory, %w", err)
	}

	f, err := os.Create(filepath.Join(l.Dir, filepath.Base(name)))
	if err != nil {
		return fmt.Errorf("failed to create upload file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write upload file, %w", err)
	}

	return nil
}

func (l *LocalStore) URL(name string) (string, bool) {
	return filepath.Join(l.Dir, filepath.Base(name)), false
}
