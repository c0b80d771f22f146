// Package config defines the run configuration of the kclust command.
//
// A Config can be loaded from YAML, overridden by flags and environment
// variables in the CLI, and must pass Validate before use:
//
//	clusters: 3
//	max_iterations: 20
//	runs: 5
//	seed: 42
//	metric: euclidean
//	input:
//	  uri: s3://exports/customers.csv.gz
//	  header: true
//	  columns: {id: 0, age: 2, income: 3, score: 4}
package config
