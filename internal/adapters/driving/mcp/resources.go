package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Docsmith resources.
	uriScheme = "docsmith://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing runs.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent documentation generation runs",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	// Template for the audit log of one run.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}/log",
		Name:        "run-log",
		Description: "Step-by-step audit log of a specific run",
		MIMEType:    "application/json",
	}, s.handleRunLogResource)
}

// handleRunsResource returns recent runs.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Runs == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	runs, err := s.ports.Runs.List(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]RunOutput, len(runs))
	for i, run := range runs {
		infos[i] = runOutput(run)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling runs: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRunLogResource returns the step records of a specific run.
func (s *Server) handleRunLogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Runs == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract runId from URI: docsmith://runs/{runId}/log
	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	_, steps, err := s.ports.Runs.Get(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", runID, err)
	}

	type stepInfo struct {
		Step       string `json:"step"`
		Status     string `json:"status"`
		Detail     string `json:"detail,omitempty"`
		StartedAt  string `json:"started_at"`
		FinishedAt string `json:"finished_at"`
	}

	infos := make([]stepInfo, len(steps))
	for i, step := range steps {
		infos[i] = stepInfo{
			Step:       step.Step,
			Status:     string(step.Status),
			Detail:     step.Detail,
			StartedAt:  step.StartedAt.Format("2006-01-02T15:04:05.000Z07:00"),
			FinishedAt: step.FinishedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling steps: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like docsmith://runs/{runId}/log.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"
	const suffix = "/log"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
