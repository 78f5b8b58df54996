// Package main is the entry point for the oancad pricing service.
package main

import (
	"os"

	"github.com/mackayauctioneers-design/oanca/cmd/oancad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
