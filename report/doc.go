// Package report receives per-iteration cluster statistics from a Clusterer.
//
// A Reporter is told when a run starts, after every completed iteration and
// when the run ends. Text writes the classic console format, Log writes
// structured records and Recorder keeps everything in memory.
package report
