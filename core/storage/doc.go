// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client and is used to read the sync secret document
// from an S3-compatible bucket. Both AWS S3 and self-hosted MinIO are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	obj, err := client.GetObject(ctx, "secrets", "dirsync/config.json", minio.GetObjectOptions{})
package storage
