// Package model defines the core data types used throughout kclust.
//
// # Identity Types
//
//   - RecordID: stable identifier read from the input source
//   - ClusterID: 1-based cluster identifier, stable within a run
//
// # Data Types
//
//   - Features: the fixed (age, income, score) feature vector
//   - Record: a data point plus its current cluster assignment
package model
