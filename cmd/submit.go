package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/store"
	"github.com/gdsc-alina/alina/internal/submission"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the last computed suggestions to the challenge",
	Run: func(cmd *cobra.Command, _ []string) {
		submit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().BoolP("yes", "y", false, "submit without asking for confirmation")
}

func submit(cmd *cobra.Command) {
	e := newEnv()

	yes, _ := cmd.Flags().GetBool("yes")

	results, err := store.LoadLastSuggestions(e.ws)
	if err != nil {
		e.logger.Fatal("loading last suggestions", zap.Error(err))
	}

	if err := submission.Validate(results); err != nil {
		e.logger.Fatal("submission format validation failed", zap.Error(err))
	}

	if !yes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Submit %d suggestions to the challenge", len(results)),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("Submission cancelled.")
			return
		}
	}

	receipt, err := e.challengeClient().Submit(e.ctx, results)
	if err != nil {
		e.logger.Fatal("submission failed", zap.Error(err))
	}

	fmt.Println("Submission succeeded!")
	if receipt.SubmissionID != "" {
		fmt.Printf("Submission ID: %s\n", receipt.SubmissionID)
	}
	if receipt.Message != "" {
		fmt.Printf("Message: %s\n", receipt.Message)
	}
	if receipt.SubmissionCount > 0 {
		fmt.Printf("Total submissions: %d\n", receipt.SubmissionCount)
	}

	// Record the batch locally only once the server accepted it, so the
	// submissions folder mirrors the server-side history.
	path, err := store.SaveSubmission(e.ws, results)
	if err != nil {
		e.logger.Fatal("recording submission", zap.Error(err))
	}
	e.logger.Info("submission recorded", zap.String("path", path))
}
