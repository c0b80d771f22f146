// Package testutil provides testing utilities for kclust.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and generators for synthetic
// customer records.
//
// # Random Record Generation
//
//	rng := testutil.NewRNG(seed)
//	records := rng.UniformRecords(200)
//	blobs := rng.ClusteredRecords(300, centers, 2)
//
// # Fixtures
//
//	records := testutil.Records([][4]int{{1, 25, 40, 60}, {2, 27, 42, 58}})
package testutil
