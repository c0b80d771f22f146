// Package ingest turns tabular input into records.
//
// The default layout is the mall customer export:
//
//	CustomerID,Gender,Age,Annual Income (k$),Spending Score (1-100)
//	1,Male,19,15,39
//
// The first row is a header and is discarded. ID, age, income and score are
// read from columns 0, 2, 3 and 4. Inputs ending in .gz, .zst or .lz4 are
// decompressed transparently.
//
// Any parse failure aborts ingestion; there is no partial result.
package ingest
