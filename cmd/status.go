package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the challenge API and the AI provider configuration",
	Run: func(_ *cobra.Command, _ []string) {
		status()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func status() {
	e := newEnv()

	fmt.Printf("%s version: %s\n\n", app, version)

	fmt.Printf("Challenge Base URL: %s\n", e.config.Challenge.BaseURL)
	fmt.Printf("Challenge Status: %s\n\n", challengeHealth(e))

	provider := e.config.AI.Provider
	if provider == "" {
		fmt.Println("AI Provider: not configured (mock implementations)")
		return
	}
	fmt.Printf("AI Provider: %s\n", provider)
	if gen, err := newGenerator(e.ctx, e.config.AI, e.logger); err != nil {
		fmt.Printf("AI Status: Unhealthy (%v)\n", err)
	} else if gen != nil {
		fmt.Println("AI Status: Healthy")
	}
}

func challengeHealth(e *env) string {
	client, err := newChallengeClient(e.ctx, e.config.Challenge, e.logger)
	if err != nil {
		return fmt.Sprintf("Unhealthy (%v)", err)
	}
	if err := client.Health(e.ctx); err != nil {
		return fmt.Sprintf("Unhealthy (%v)", err)
	}
	return "Healthy"
}
