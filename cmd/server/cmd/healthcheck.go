package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var healthcheckURL string

// healthcheckCmd probes a running server. Meant for container HEALTHCHECK
// directives; exits non-zero when the server does not answer 200.
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check whether a running server is healthy",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(healthcheckURL)
		if err != nil {
			return fmt.Errorf("healthcheck failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("healthcheck failed: status %d", resp.StatusCode)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	healthcheckCmd.Flags().StringVar(&healthcheckURL, "url", "http://localhost:8080/healthz", "health endpoint to probe")
}
