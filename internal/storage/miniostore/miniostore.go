// Package miniostore uploads datasets to a MinIO server.
package miniostore

import (
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/UnknownOlympus/daedalus/internal/storage"
)

// FPutObjectAPI is the subset of the MinIO client used for uploads.
type FPutObjectAPI interface {
	FPutObject(
		ctx context.Context,
		bucketName, objectName, filePath string,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

// Options configures the MinIO client.
type Options struct {
	Endpoint  string // host:port, no scheme
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type Store struct {
	client FPutObjectAPI
}

func New(client FPutObjectAPI) *Store {
	return &Store{client: client}
}

// NewClient creates a MinIO client with static credentials.
func NewClient(opts Options) (*minio.Client, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", opts.Endpoint, err)
	}

	return client, nil
}

// Upload streams the file at localPath into bucket under key.
func (s *Store) Upload(ctx context.Context, bucket, localPath, key string) error {
	_, err := s.client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return storage.NewObjectError("upload", bucket, key, kindOf(err), err)
	}

	return nil
}

func kindOf(err error) storage.Kind {
	resp := minio.ToErrorResponse(err)

	switch {
	case resp.Code == "AccessDenied" || resp.Code == "AccountProblem" ||
		resp.Code == "InvalidAccessKeyId" || resp.Code == "SignatureDoesNotMatch" ||
		resp.StatusCode == http.StatusForbidden:
		return storage.KindPermission
	case resp.Code != "" || resp.StatusCode != 0:
		return storage.KindAPI
	default:
		return storage.KindUnexpected
	}
}
