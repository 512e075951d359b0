// Package storage publishes finished renders to an S3 compatible bucket.
package storage

import "context"

// Publisher uploads a local file and returns the object name it was stored under.
type Publisher interface {
	Publish(ctx context.Context, localPath string) (string, error)
}
