package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

// GenerateInput is the input schema for the generate_document tool.
type GenerateInput struct {
	Request string   `json:"request" jsonschema:"natural-language description of the documentation to generate"`
	CodeDir string   `json:"code_dir,omitempty" jsonschema:"optional directory of source code to analyse"`
	Files   []string `json:"files,omitempty" jsonschema:"optional explicit list of source files to analyse"`
	DocType string   `json:"doc_type,omitempty" jsonschema:"pin a single document type: brd, frd, nfrd, cloud, security or api"`
}

// GenerateOutput is the output schema for the generate_document tool.
type GenerateOutput struct {
	RunID     string           `json:"run_id"`
	Documents []DocumentOutput `json:"documents"`
	Failures  []FailureOutput  `json:"failures,omitempty"`
	Summary   string           `json:"summary,omitempty"`
	Degraded  bool             `json:"degraded"`
}

// DocumentOutput represents a single generated document.
type DocumentOutput struct {
	Type             string `json:"type"`
	Body             string `json:"body"`
	SecurityReviewed bool   `json:"security_reviewed"`
}

// FailureOutput represents a document type that could not be generated.
type FailureOutput struct {
	Type   string `json:"type"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// ListRunsInput is the input schema for the list_runs tool.
type ListRunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default 20)"`
}

// ListRunsOutput is the output schema for the list_runs tool.
type ListRunsOutput struct {
	Runs  []RunOutput `json:"runs"`
	Count int         `json:"count"`
}

// RunOutput represents one run history entry.
type RunOutput struct {
	ID            string   `json:"id"`
	Request       string   `json:"request"`
	State         string   `json:"state"`
	DocumentTypes []string `json:"document_types,omitempty"`
	Error         string   `json:"error,omitempty"`
	StartedAt     string   `json:"started_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_document",
		Description: "Generate project documentation (BRD, FRD, NFRD, cloud, security, API) from a natural-language request",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_runs",
		Description: "List recent documentation generation runs, newest first",
	}, s.handleListRuns)
}

// handleGenerate handles the generate_document tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	req := domain.Request{
		RawText:   input.Request,
		CodeDir:   input.CodeDir,
		CodeFiles: input.Files,
		// MCP callers cannot answer clarification questions; runs
		// always proceed with defaults.
		Interactive: false,
	}
	if input.DocType != "" {
		forced := domain.NormalizeDocumentType(input.DocType)
		if forced == domain.DocTypeGeneric {
			return nil, GenerateOutput{}, fmt.Errorf("%w: unknown document type %q", domain.ErrValidation, input.DocType)
		}
		req.ForcedType = forced
	}

	result, err := s.ports.Generation.Generate(ctx, req)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	output := GenerateOutput{
		RunID:     result.RunID,
		Documents: make([]DocumentOutput, len(result.Documents)),
		Summary:   result.SummaryText,
		Degraded:  result.Degraded(),
	}
	for i, doc := range result.Documents {
		output.Documents[i] = DocumentOutput{
			Type:             string(doc.Type),
			Body:             doc.Body,
			SecurityReviewed: doc.SecurityReviewed,
		}
	}
	for _, f := range result.Failures {
		output.Failures = append(output.Failures, FailureOutput{
			Type:   string(f.Type),
			Kind:   f.Kind,
			Detail: f.Detail,
		})
	}

	return nil, output, nil
}

// handleListRuns handles the list_runs tool invocation.
func (s *Server) handleListRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRunsInput,
) (*mcp.CallToolResult, ListRunsOutput, error) {
	if s.ports.Runs == nil {
		return nil, ListRunsOutput{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	runs, err := s.ports.Runs.List(ctx, limit)
	if err != nil {
		return nil, ListRunsOutput{}, err
	}

	output := ListRunsOutput{
		Runs:  make([]RunOutput, len(runs)),
		Count: len(runs),
	}
	for i, run := range runs {
		output.Runs[i] = runOutput(run)
	}

	return nil, output, nil
}

// runOutput converts a run record to its tool output form.
func runOutput(run domain.RunRecord) RunOutput {
	types := make([]string, len(run.DocumentTypes))
	for i, t := range run.DocumentTypes {
		types[i] = string(t)
	}
	return RunOutput{
		ID:            run.ID,
		Request:       run.Request,
		State:         string(run.State),
		DocumentTypes: types,
		Error:         run.Error,
		StartedAt:     run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
