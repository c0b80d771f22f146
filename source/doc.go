// Package source provides read access to the raw input files that records
// are ingested from.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible services
//
// Locations are written as URIs and split with ParseURI:
//
//	data/Mall_Customers.csv
//	file:///var/lib/kclust/customers.csv.gz
//	s3://bucket/exports/customers.csv.zst
//	minio://bucket/customers/   (a prefix: every object below it)
package source
