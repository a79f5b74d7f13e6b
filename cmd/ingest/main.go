// Command ingest runs one ingestion pipeline or step and exits. It is meant for cron or a
// cloud scheduler; the exit status is the outcome.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
