// Package s3store uploads datasets to AWS S3 or any S3-compatible object store.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/UnknownOlympus/daedalus/internal/storage"
)

const contentType = "text/csv"

// permissionCodes are S3 error codes that mean the caller may not write the object.
//
//nolint:gochecknoglobals // lookup table
var permissionCodes = map[string]struct{}{
	"AccessDenied":          {},
	"Forbidden":             {},
	"AllAccessDisabled":     {},
	"AccountProblem":        {},
	"InvalidAccessKeyId":    {},
	"SignatureDoesNotMatch": {},
	"InvalidPayer":          {},
}

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures the S3 client.
type Options struct {
	Region    string
	Endpoint  string // empty for AWS; set for LocalStack, Ceph and friends
	AccessKey string
	SecretKey string
}

// Store is a storage.Uploader backed by S3.
type Store struct {
	client PutObjectAPI
}

func New(client PutObjectAPI) *Store {
	return &Store{client: client}
}

// NewClient builds an S3 client from the default AWS credential chain, overridden by opts.
func NewClient(ctx context.Context, opts Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error

	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{AccessKeyID: opts.AccessKey, SecretAccessKey: opts.SecretKey}, nil
			})))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload puts the file at localPath into bucket under key.
func (s *Store) Upload(ctx context.Context, bucket, localPath, key string) error {
	const opn = "upload"

	file, err := os.Open(localPath)
	if err != nil {
		return storage.NewObjectError(opn, bucket, key, storage.KindUnexpected, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return storage.NewObjectError(opn, bucket, key, storage.KindUnexpected, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return storage.NewObjectError(opn, bucket, key, kindOf(err), err)
	}

	return nil
}

type httpStatusError interface {
	HTTPStatusCode() int
}

// kindOf sorts an SDK error into the storage taxonomy.
func kindOf(err error) storage.Kind {
	var apiErr smithy.APIError
	isAPI := errors.As(err, &apiErr)
	if isAPI {
		if _, ok := permissionCodes[apiErr.ErrorCode()]; ok {
			return storage.KindPermission
		}
	}

	var statusErr httpStatusError
	if errors.As(err, &statusErr) {
		if statusErr.HTTPStatusCode() == http.StatusForbidden {
			return storage.KindPermission
		}
		return storage.KindAPI
	}

	if isAPI {
		return storage.KindAPI
	}

	return storage.KindUnexpected
}
