// Package kmeans implements the clustering engine: distance-weighted seeding,
// nearest-centroid assignment, truncating centroid updates and the per-run
// iteration state machine.
//
// A State is created by Seed (or NewState) and mutated in place by Assign and
// Update. A Controller drives a State from PhaseInit to either PhaseConverged
// or PhaseExhausted.
package kmeans
