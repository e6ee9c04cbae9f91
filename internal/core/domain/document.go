package domain

import "time"

// charsPerToken is the approximation used for token accounting when the
// provider does not report usage (1 token is roughly 4 characters).
const charsPerToken = 4

// EstimateTokens approximates the token count of a text payload.
func EstimateTokens(text string) int {
	return len(text) / charsPerToken
}

// GenerationMetadata records how a draft was produced.
type GenerationMetadata struct {
	// StartedAt is when the drafting call was issued.
	StartedAt time.Time

	// FinishedAt is when the response was received.
	FinishedAt time.Time

	// Model is the model name reported by the LLM adapter.
	Model string

	// PromptTokens is the (possibly estimated) input token count.
	PromptTokens int

	// OutputTokens is the (possibly estimated) output token count.
	OutputTokens int
}

// DraftDocument is one generated document. It is owned exclusively by the
// pipeline stage that created it until handed to the next stage.
type DraftDocument struct {
	// Type is the canonical document type.
	Type DocumentType

	// Body is the Markdown document body.
	Body string

	// Meta records generation provenance.
	Meta GenerationMetadata

	// SecurityReviewed is true iff the security annotator ran on this draft.
	SecurityReviewed bool
}

// DocumentFailure records one document type that could not be generated.
type DocumentFailure struct {
	// Type is the document type that failed.
	Type DocumentType

	// Kind is the classified error kind (see errors.go).
	Kind string

	// Detail is the human-readable failure description.
	Detail string
}

// PackageResult is the final outcome of a generation run.
type PackageResult struct {
	// RunID identifies the run that produced this package.
	RunID string

	// Documents are the successfully generated documents, in the order
	// the document types were requested.
	Documents []DraftDocument

	// Failures enumerates the document types that failed and why.
	Failures []DocumentFailure

	// SummaryText is the package summary, present only when more than
	// one document was generated.
	SummaryText string
}

// Degraded returns true when at least one but not all requested types failed.
func (p PackageResult) Degraded() bool {
	return len(p.Failures) > 0 && len(p.Documents) > 0
}
