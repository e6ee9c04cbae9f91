package domain

import (
	"fmt"
	"os"
	"strings"
)

// Request is a single documentation generation request. It is immutable
// once accepted by the orchestrator.
type Request struct {
	// RawText is the user's natural-language description of what to generate.
	RawText string

	// CodeDir is an optional directory of source code to analyse.
	CodeDir string

	// CodeFiles is an optional explicit list of files to analyse.
	// Mutually exclusive with CodeDir; CodeDir wins if both are set.
	CodeFiles []string

	// ForcedType pins the output to a single document type.
	// Empty means the type is recommended by requirement extraction.
	ForcedType DocumentType

	// Interactive enables the clarification loop for ambiguous requests.
	Interactive bool

	// OutputDir overrides the configured output location.
	OutputDir string
}

// HasCode returns true if the request carries source code context.
func (r Request) HasCode() bool {
	return r.CodeDir != "" || len(r.CodeFiles) > 0
}

// Validate checks the request before any external call is made.
// All failures wrap ErrValidation.
func (r Request) Validate() error {
	if strings.TrimSpace(r.RawText) == "" {
		return fmt.Errorf("%w: request text is empty", ErrValidation)
	}

	if r.ForcedType != "" && !r.ForcedType.IsValid() {
		return fmt.Errorf("%w: unknown document type %q", ErrValidation, string(r.ForcedType))
	}

	if r.CodeDir != "" {
		info, err := os.Stat(r.CodeDir)
		if err != nil {
			return fmt.Errorf("%w: code directory %s: %v", ErrValidation, r.CodeDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: code path %s is not a directory", ErrValidation, r.CodeDir)
		}
	}

	if r.CodeDir == "" && r.CodeFiles != nil {
		if len(r.CodeFiles) == 0 {
			return fmt.Errorf("%w: file list specified but empty", ErrValidation)
		}
		var missing []string
		for _, f := range r.CodeFiles {
			if _, err := os.Stat(f); err != nil {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: files not found: %s", ErrValidation, strings.Join(missing, ", "))
		}
	}

	return nil
}
