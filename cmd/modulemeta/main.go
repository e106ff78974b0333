// Command modulemeta classifies parsed JavaScript syntax-tree dumps into
// module metadata and prints the resulting map.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
