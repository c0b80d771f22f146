// Package distance provides distance calculations between feature vectors.
//
// The default metric is Euclidean (root-sum-of-squares), which is what both
// seeding and assignment use unless configured otherwise.
package distance
