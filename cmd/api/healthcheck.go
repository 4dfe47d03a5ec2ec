package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"shelter-services/internal/platform/httpclient"
)

// newHealthcheckCmd sondea /health de un servicio en marcha; sale con error si no responde "ok".
func newHealthcheckCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Verifica que un servicio responda en /health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := httpclient.New(baseURL, timeout)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := client.Health(ctx); err != nil {
				return err
			}
			cmd.Println("ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://127.0.0.1:3001", "URL base del servicio")
	cmd.Flags().DurationVar(&timeout, "timeout", httpclient.DefaultTimeout, "timeout del request")
	return cmd
}
