// ABOUTME: Entry point for the eventdesk CLI
// ABOUTME: Admin console and scripting commands for the EventDesk platform

package main

import (
	"fmt"
	"os"

	"github.com/eventdesk/console/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
