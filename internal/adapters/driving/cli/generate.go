package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

var (
	generateCodeDir     string
	generateFiles       []string
	generateDocType     string
	generateInteractive bool
	generateOutput      string
)

var generateCmd = &cobra.Command{
	Use:   "generate [request]",
	Short: "Generate documentation from a natural-language request",
	Long: `Generates one or more documents from a natural-language request.

The request is analysed to recommend document types (BRD, FRD, NFRD, CLOUD,
SECURITY, API) unless --doc-type pins a single one. With --code-dir or
--files, the source code is summarised and used to ground the drafts.

Examples:
  docsmith generate "Document the patient booking system for a hospital"
  docsmith generate "API docs for the billing service" --code-dir ./billing --doc-type api
  docsmith generate "New CRM rollout" --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateCodeDir, "code-dir", "", "directory of source code to analyse")
	generateCmd.Flags().StringSliceVar(&generateFiles, "files", nil, "explicit source files to analyse")
	generateCmd.Flags().StringVarP(&generateDocType, "doc-type", "t", "", "pin a single document type (brd, frd, nfrd, cloud, security, api)")
	generateCmd.Flags().BoolVarP(&generateInteractive, "interactive", "i", false, "answer clarification questions interactively")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory override")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generationService == nil {
		return errors.New("generation service not configured")
	}

	req := domain.Request{
		RawText:     args[0],
		CodeDir:     generateCodeDir,
		CodeFiles:   generateFiles,
		Interactive: generateInteractive,
		OutputDir:   generateOutput,
	}
	if generateDocType != "" {
		forced := domain.NormalizeDocumentType(generateDocType)
		if forced == domain.DocTypeGeneric {
			return fmt.Errorf("%w: unknown document type %q", domain.ErrValidation, generateDocType)
		}
		req.ForcedType = forced
	}

	result, err := generationService.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	cmd.Printf("Run %s complete.\n\n", result.RunID)
	for _, doc := range result.Documents {
		reviewed := ""
		if doc.SecurityReviewed {
			reviewed = " (security reviewed)"
		}
		cmd.Printf("  %-10s %s%s\n", doc.Type, doc.Type.Description(), reviewed)
	}
	if result.SummaryText != "" {
		cmd.Println("  SUMMARY    Package Summary")
	}

	// A degraded run still exits zero; failures are warnings.
	for _, f := range result.Failures {
		cmd.PrintErrf("Warning: %s failed (%s): %s\n", f.Type, f.Kind, f.Detail)
	}
	if result.Degraded() {
		cmd.PrintErrln("Some document types failed; see the run log for details.")
	}

	return nil
}
