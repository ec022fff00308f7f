// Command larksync syncs warehouse revenue into a Lark Bitable table and
// ingests QR code images as Bitable attachments.
package main

import (
	"fmt"
	"os"

	"github.com/atino-ops/larksync/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
