package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify connectivity to the summarization provider",
	Long: `Send a minimal request to the configured summarization provider and
report the result. Run this once after configuring credentials instead of
finding out during the first real commit.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}

	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))

	if err := client.VerifyConnection(context.Background()); err != nil {
		fmt.Println(errorStyle.Render("✗ connection check failed"))
		return err
	}

	fmt.Println(successStyle.Render("✓ summarization provider reachable"))
	return nil
}
