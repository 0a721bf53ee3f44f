// Package s3 provides a client for S3-compatible blob storage.
//
// Scaffolded projects optionally get one bucket for user uploads. The
// client targets any S3-compatible endpoint (AWS, Hetzner, MinIO) through
// a configurable base endpoint and static credentials.
package s3
