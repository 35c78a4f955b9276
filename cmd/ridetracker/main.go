// Command ridetracker is the ride expense dashboard client.
//
// Usage:
//
//	ridetracker dashboard
//	ridetracker add --platform Uber --value 23.50 --date 2024-01-01
//	ridetracker edit 7 --value 25.00 --payment Pix
//	ridetracker delete 7
//	ridetracker serve --listen :8080
package main

import (
	"fmt"
	"os"

	"github.com/ridetracker/ridetracker/cmd/ridetracker/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
