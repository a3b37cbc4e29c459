// Command strata is the Strata CLI. It scaffolds layer documents,
// inspects how they mirror into a scene, and renders them to PNG
// images.
//
// Usage:
//
//	strata init poster.yaml
//	strata inspect poster.yaml
//	strata render poster.yaml -o out.png
package main

import (
	"fmt"
	"os"

	"github.com/go-strata/strata/cmd/strata/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
