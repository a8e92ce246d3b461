// Dosewatch - a command-line medicine reminder and dose tracker.
package main

import (
	"os"

	"github.com/dosewatch/dosewatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
