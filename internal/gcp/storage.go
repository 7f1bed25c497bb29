package gcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// ParseGCSLocation splits a gs://bucket/object locator. Locators in any other
// scheme report ok == false and are passed to handlers untouched.
func ParseGCSLocation(uri string) (bucket, object string, ok bool) {
	rest, found := strings.CutPrefix(uri, "gs://")
	if !found {
		return "", "", false
	}
	bucket, object, found = strings.Cut(rest, "/")
	if !found || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}

// ObjectChecker answers existence checks against Cloud Storage. It reads
// object metadata only, never content.
type ObjectChecker struct {
	client *storage.Client
}

func NewObjectChecker(ctx context.Context) (*ObjectChecker, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}
	return &ObjectChecker{client: client}, nil
}

// ObjectExists reports whether the object is present in the bucket.
func (c *ObjectChecker) ObjectExists(ctx context.Context, bucket, object string) (bool, error) {
	_, err := c.client.Bucket(bucket).Object(object).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat gs://%s/%s: %w", bucket, object, err)
	}
	return true, nil
}
