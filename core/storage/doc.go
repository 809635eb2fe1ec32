// Package storage provides read-only access to object storage.
//
// It wraps the MinIO Go client (AWS S3 and self-hosted MinIO) behind a small
// Client interface so that installation mirrors and mission archives kept in a
// bucket can be read the same way as local files, and so storage interactions
// can be mocked in tests (see core/storage/mocks).
//
// Object locations are written as URLs: s3://bucket/prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	bucket, prefix, ok := storage.ParseURL("s3://liveries/Bazar/Liveries")
package storage
