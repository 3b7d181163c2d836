package main

import (
	"log/slog"
	"os"

	"github.com/computeadvisor/advisor/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		slog.Error("advisord exited with error", "error", err)
		os.Exit(1)
	}
}
