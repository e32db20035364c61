// ccmon monitors running and saved Claude Code sessions.
package main

import (
	"os"

	"github.com/ccmon-tools/ccmon/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
