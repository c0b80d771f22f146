// Command kclust partitions customer records into k clusters.
package main

import "github.com/hupe1980/kclust/internal/cli"

func main() {
	cli.Execute()
}
