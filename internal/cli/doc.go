// Package cli implements the kclust command line.
//
// Configuration is layered the usual way: built-in defaults, then the YAML
// file named by --config, then KCLUST_* environment variables, then flags.
package cli
