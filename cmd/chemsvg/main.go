// Command chemsvg makes chemical-structure SVG drawings follow the
// light/dark color scheme of the page embedding them.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error("chemsvg failed", "error", err)
		os.Exit(1)
	}
}
