package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := newServeCmd("calc_service")
	root.Short = "Arithmetic HTTP service with an in-memory task list"
	root.Long = `calc_service serves /api/add, /api/subtract, /api/multiply, /api/divide,
/tasks, /stats and /health over HTTP, and grpc.health.v1 on GRPC_PORT.
Configuration comes from .env and environment variables, flags override them.`
	root.Example = `
# Start on the ports from .env or the defaults (10000 and 10001)
calc_service

# Start on port 8080 without the gRPC health server
calc_service --port=8080 --grpc-port=""

# Check a running instance
calc_service probe --addr=localhost:10001
`

	root.AddCommand(newServeCmd("serve"))
	root.AddCommand(newProbeCmd())
	return root
}
