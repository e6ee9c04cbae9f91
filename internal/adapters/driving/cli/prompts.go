package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage role prompt templates",
	Long: `Role prompts are plain text files that control how each agent role
behaves. Edit them to tune personas and payload templates; deleting a file
restores the built-in default on next use.`,
	RunE: runPromptsPath,
}

var promptsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the prompt template directory",
	RunE:  runPromptsPath,
}

var promptsReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Clear the prompt cache, forcing fresh loads from disk",
	RunE:  runPromptsReload,
}

func init() {
	promptsCmd.AddCommand(promptsPathCmd)
	promptsCmd.AddCommand(promptsReloadCmd)
	rootCmd.AddCommand(promptsCmd)
}

func runPromptsPath(cmd *cobra.Command, _ []string) error {
	if promptDir == "" {
		return errors.New("prompt store not configured")
	}
	cmd.Println(promptDir)
	return nil
}

func runPromptsReload(cmd *cobra.Command, _ []string) error {
	if promptReload == nil {
		return errors.New("prompt store not configured")
	}
	promptReload()
	cmd.Println("Prompt cache cleared.")
	return nil
}
