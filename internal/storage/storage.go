// Package storage defines the object-store upload collaborator and classifies its failures.
package storage

import (
	"context"
	"errors"
	"fmt"
)

const (
	// BucketName is the destination bucket of the dataset.
	BucketName = "bkt-employeeedata"
	// ObjectKey is the remote key the dataset is stored under.
	ObjectKey = "employee_data.csv"
)

// Uploader transfers a local file to bucket under key.
type Uploader interface {
	Upload(ctx context.Context, bucket, localPath, key string) error
}

// Kind tells which branch of the upload error taxonomy an Error belongs to.
type Kind int

const (
	KindUnexpected Kind = iota
	KindPermission
	KindAPI
)

// Sentinel errors matched by errors.Is against an *Error of the corresponding Kind.
var (
	ErrAccessDenied = errors.New("storage: access denied")
	ErrAPI          = errors.New("storage: api error")
)

// Error is an upload failure with context about the object involved.
type Error struct {
	// Op is the operation that failed, e.g. "upload"
	Op string
	// Bucket is the destination bucket
	Bucket string
	// Key is the destination object key
	Key string
	// Kind classifies the failure
	Kind Kind
	// Err is the underlying error from the backend SDK or the local filesystem
	Err error
}

// NewObjectError creates an Error for bucket/key.
func NewObjectError(op, bucket, key string, kind Kind, err error) *Error {
	return &Error{Op: op, Bucket: bucket, Key: key, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's Kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindPermission:
		return target == ErrAccessDenied //nolint:errorlint // sentinel identity
	case KindAPI:
		return target == ErrAPI //nolint:errorlint // sentinel identity
	case KindUnexpected:
		return false
	}

	return false
}

// Outcome is the tagged result of one upload attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomePermissionDenied
	OutcomeAPIError
	OutcomeUnexpected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePermissionDenied:
		return "permission_denied"
	case OutcomeAPIError:
		return "api_error"
	case OutcomeUnexpected:
		return "unexpected"
	}

	return fmt.Sprintf("outcome(%d)", int(o))
}

// Classify maps an Upload error onto an Outcome. Permission is checked before the
// general API branch, so a permission failure never reports as an API error.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrAccessDenied):
		return OutcomePermissionDenied
	case errors.Is(err, ErrAPI):
		return OutcomeAPIError
	default:
		return OutcomeUnexpected
	}
}
