package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	internalgrpc "calcapi/internal/grpc"
)

func newProbeCmd() *cobra.Command {
	var (
		addr    string
		service string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:          "probe",
		Short:        "Check the gRPC health service of a running instance",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := internalgrpc.NewHealthClient(ctx, addr)
			if err != nil {
				return err
			}
			defer client.Close()

			st, err := client.Check(ctx, service)
			if err != nil {
				return fmt.Errorf("health check %s: %w", addr, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), st.String())
			if st != healthpb.HealthCheckResponse_SERVING {
				return fmt.Errorf("service %q is %s", service, st)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:10001", "gRPC health server address")
	cmd.Flags().StringVar(&service, "service", internalgrpc.ServiceName, `service name, "" checks the whole server`)
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "probe timeout")
	return cmd
}
