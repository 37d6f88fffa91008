// Package s3 provides a read-only client for S3-compatible object storage.
//
// It is used to fetch stack definitions kept in a bucket. Any S3-compatible
// endpoint works (AWS, Hetzner Object Storage, MinIO); credentials fall back
// to the default AWS chain when no static keys are configured.
package s3
