// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow read-only interface. The catalog
// only ever downloads plugin containers, so the interface exposes bucket checks,
// object downloads and listings. Both AWS S3 and self-hosted MinIO are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "plugins")
package storage
