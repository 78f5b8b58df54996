// Package main is the entry point for the oanca CLI client.
package main

import (
	"github.com/mackayauctioneers-design/oanca/cmd/oanca/cmd"
)

func main() {
	cmd.Execute()
}
