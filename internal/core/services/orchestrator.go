package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driving"
	"github.com/docsmith-labs/docsmith-cli/internal/logger"
)

// Ensure WorkflowOrchestrator implements the interface.
var _ driving.GenerationService = (*WorkflowOrchestrator)(nil)

// WorkflowOrchestrator drives a generation run through its states:
//
//	Accepted -> ExtractingRequirements -> (ClarificationPending | Drafting)
//	         -> Finalizing -> Persisted
//
// Failed is terminal and reachable from any non-terminal state. Drafting is
// the single fan-out point: document types are drafted concurrently, and
// requirement extraction runs concurrently with code summarisation when both
// are needed.
type WorkflowOrchestrator struct {
	extractor  *RequirementExtractor
	researcher *CodeResearcher
	summarizer driven.CodeSummarizer
	drafter    *DocumentDrafter
	annotator  *SecurityAnnotator
	finalizer  *Finalizer
	artifacts  driven.ArtifactStore
	runs       driven.RunStore   // optional; nil disables run history
	clarifier  driving.Clarifier // optional; nil forces non-interactive behaviour
	settings   domain.AppSettings
}

// NewWorkflowOrchestrator wires the workflow services together.
func NewWorkflowOrchestrator(
	extractor *RequirementExtractor,
	researcher *CodeResearcher,
	summarizer driven.CodeSummarizer,
	drafter *DocumentDrafter,
	annotator *SecurityAnnotator,
	finalizer *Finalizer,
	artifacts driven.ArtifactStore,
	runs driven.RunStore,
	clarifier driving.Clarifier,
	settings domain.AppSettings,
) *WorkflowOrchestrator {
	return &WorkflowOrchestrator{
		extractor:  extractor,
		researcher: researcher,
		summarizer: summarizer,
		drafter:    drafter,
		annotator:  annotator,
		finalizer:  finalizer,
		artifacts:  artifacts,
		runs:       runs,
		clarifier:  clarifier,
		settings:   settings,
	}
}

// codeContext is the shared output of the code summarisation pipeline.
type codeContext struct {
	summary  domain.CodeSummary
	analysis string
	err      error
}

// Generate runs the full workflow for one request.
func (o *WorkflowOrchestrator) Generate(ctx context.Context, req domain.Request) (*domain.PackageResult, error) {
	// Accepted: validation happens synchronously, before any external
	// call. An invalid request is never accepted and leaves no artifacts.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102_150405"), uuid.NewString()[:8])
	runLog := domain.NewRunLog(runID)
	artifacts := o.artifacts.WithOutputDir(req.OutputDir)
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = o.settings.OutputDir
	}
	record := domain.RunRecord{
		ID:        runID,
		Request:   req.RawText,
		State:     domain.StateAccepted,
		OutputDir: outputDir,
		StartedAt: runLog.StartedAt,
	}
	runLog.Append("accepted", runLog.StartedAt, domain.StepOK, summarizeRequest(req))
	logger.Section("Run " + runID)

	fail := func(state domain.RunState, err error) (*domain.PackageResult, error) {
		record.State = domain.StateFailed
		record.Error = fmt.Sprintf("%s: %v", domain.ErrorKind(err), err)
		record.FinishedAt = time.Now().UTC()
		runLog.Append(string(state), record.FinishedAt, domain.StepFailed, record.Error)
		o.flush(artifacts, runLog, record)
		return nil, err
	}

	// ExtractingRequirements: extraction and code summarisation are
	// independent inputs to drafting, so they run concurrently; their
	// wall-clock cost collapses to the slower of the two.
	record.State = domain.StateExtracting
	codeCh := o.startCodePipeline(ctx, req, runLog)

	// The code summary feeds extraction when it is already available;
	// extraction never blocks on it.
	var code codeContext
	codeReady := false
	select {
	case code = <-codeCh:
		codeReady = true
	default:
	}

	reqs, err := o.extract(ctx, req, code.summary.Text, nil, runLog)

	if !codeReady {
		code = <-codeCh
	}
	if err != nil {
		return fail(domain.StateExtracting, err)
	}
	if code.err != nil {
		// Drafts can still be produced without code context; the step
		// failure is recorded and the run continues.
		logger.Warn("code context unavailable: %v", code.err)
	}

	// ClarificationPending: interactive runs loop until resolved or the
	// round limit trips; non-interactive runs downgrade to defaults.
	// Re-extractions see the code summary, which is complete by now.
	reqs, err = o.clarify(ctx, req, code.summary.Text, reqs, runLog)
	if err != nil {
		return fail(domain.StateClarificationPending, err)
	}

	// Drafting: one concurrent task per requested type. Annotation runs
	// on the drafting task itself so one document's security review never
	// blocks a sibling's drafting.
	record.State = domain.StateDrafting
	types := reqs.TypesToGenerate(req.ForcedType)
	record.DocumentTypes = types
	docs, failures := o.draft(ctx, req, reqs, renderCodeContext(code), types, runLog)

	if req.ForcedType != "" {
		for _, f := range failures {
			if f.Type == req.ForcedType {
				return fail(domain.StateDrafting, fmt.Errorf("forced document type %s failed: %s: %s",
					f.Type, f.Kind, f.Detail))
			}
		}
	}
	if len(docs) == 0 {
		return fail(domain.StateDrafting, fmt.Errorf("%w: all %d document types failed",
			firstFailureErr(failures), len(types)))
	}

	// Finalizing: waits for the complete fan-out (the draft stage already
	// joined); missing members are carried in failures, never dropped.
	record.State = domain.StateFinalizing
	result, err := o.finalizer.Finalize(ctx, runID, docs, failures)
	if err != nil {
		return fail(domain.StateFinalizing, err)
	}
	runLog.Append("finalize", time.Now().UTC(), domain.StepOK,
		fmt.Sprintf("%d documents, %d failures", len(result.Documents), len(result.Failures)))

	// Persisted: the only state that reports success to the caller.
	if err := o.persist(ctx, artifacts, result, runLog); err != nil {
		return fail(domain.StateFinalizing, err)
	}

	record.State = domain.StatePersisted
	record.FinishedAt = time.Now().UTC()
	if result.Degraded() {
		record.Error = fmt.Sprintf("%s: %d of %d document types failed",
			domain.ErrorKind(domain.ErrPartialFailure), len(result.Failures), len(types))
	}
	o.flush(artifacts, runLog, record)
	return result, nil
}

// startCodePipeline launches summarisation plus code research when the
// request carries code. The returned channel always yields exactly once.
func (o *WorkflowOrchestrator) startCodePipeline(ctx context.Context, req domain.Request, runLog *domain.RunLog) <-chan codeContext {
	ch := make(chan codeContext, 1)

	if !req.HasCode() {
		ch <- codeContext{}
		return ch
	}

	go func() {
		started := time.Now().UTC()
		summary, err := o.summarizer.Summarize(ctx, req, o.settings.SummaryBudget)
		if err != nil {
			runLog.Append("summarize_code", started, domain.StepFailed, err.Error())
			ch <- codeContext{err: err}
			return
		}
		runLog.Append("summarize_code", started, domain.StepOK,
			fmt.Sprintf("%d/%d files, truncated=%t", summary.FilesIncluded, summary.FilesTotal, summary.Truncated))

		started = time.Now().UTC()
		analysis, err := o.researcher.Analyze(ctx, summary)
		if err != nil {
			runLog.Append("code_research", started, domain.StepFailed, err.Error())
			// The raw outline is still usable context on its own.
			ch <- codeContext{summary: summary, err: err}
			return
		}
		runLog.Append("code_research", started, domain.StepOK, analysis)
		ch <- codeContext{summary: summary, analysis: analysis}
	}()

	return ch
}

// extract runs requirement extraction once and logs the step.
func (o *WorkflowOrchestrator) extract(ctx context.Context, req domain.Request, codeSummary string, answers []string, runLog *domain.RunLog) (*domain.RequirementSet, error) {
	started := time.Now().UTC()
	reqs, err := o.extractor.Extract(ctx, req, codeSummary, answers)
	if err != nil {
		runLog.Append("extract_requirements", started, domain.StepFailed, err.Error())
		return nil, err
	}
	runLog.Append("extract_requirements", started, domain.StepOK,
		fmt.Sprintf("features=%d domain=%s types=%v clarification=%t",
			len(reqs.Features), reqs.DomainHint, reqs.RecommendedTypes, reqs.ClarificationNeeded))
	return reqs, nil
}

// clarify resolves an ambiguous requirement set. Non-interactive runs (or
// runs without a clarifier) downgrade to reasonable defaults instead of
// failing; interactive runs loop until resolved, the user proceeds, or the
// round limit is exceeded.
func (o *WorkflowOrchestrator) clarify(ctx context.Context, req domain.Request, codeSummary string, reqs *domain.RequirementSet, runLog *domain.RunLog) (*domain.RequirementSet, error) {
	if !reqs.ClarificationNeeded {
		return reqs, nil
	}

	if !req.Interactive || o.clarifier == nil {
		runLog.Append("clarification", time.Now().UTC(), domain.StepSkipped,
			"non-interactive run, proceeding with defaults")
		reqs.ClarificationNeeded = false
		return reqs, nil
	}

	rounds := o.settings.ClarificationRounds
	if rounds <= 0 {
		rounds = domain.DefaultSettings().ClarificationRounds
	}

	var answers []string
	for reqs.ClarificationNeeded {
		if len(answers) >= rounds {
			return nil, fmt.Errorf("%w: %d rounds without resolution",
				domain.ErrClarificationTimeout, rounds)
		}

		started := time.Now().UTC()
		answer, proceed, err := o.clarifier.Ask(ctx, reqs.OpenQuestions)
		if err != nil {
			return nil, fmt.Errorf("clarification: %w", err)
		}
		if proceed {
			runLog.Append("clarification", started, domain.StepOK, "user chose to proceed with defaults")
			reqs.ClarificationNeeded = false
			return reqs, nil
		}
		answers = append(answers, answer)
		runLog.Append("clarification", started, domain.StepOK,
			fmt.Sprintf("round %d answered", len(answers)))

		reqs, err = o.extract(ctx, req, codeSummary, answers, runLog)
		if err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

// draft fans out one task per document type and joins the full set. A
// single type's failure is contained; siblings already in flight finish
// undisturbed. Results keep the requested type order.
func (o *WorkflowOrchestrator) draft(
	ctx context.Context,
	req domain.Request,
	reqs *domain.RequirementSet,
	code string,
	types []domain.DocumentType,
	runLog *domain.RunLog,
) ([]domain.DraftDocument, []domain.DocumentFailure) {
	drafts := make([]*domain.DraftDocument, len(types))
	errs := make([]error, len(types))

	var wg sync.WaitGroup
	for i, docType := range types {
		// On cancellation stop scheduling new tasks; in-flight ones
		// finish and the run log is flushed with partial state.
		if ctx.Err() != nil {
			errs[i] = fmt.Errorf("%w: cancelled before drafting", ctx.Err())
			continue
		}

		wg.Add(1)
		go func(i int, docType domain.DocumentType) {
			defer wg.Done()

			started := time.Now().UTC()
			draft, err := o.drafter.Draft(ctx, docType, reqs, code, req.RawText)
			if err != nil {
				runLog.Append("draft_"+strings.ToLower(docType.String()), started, domain.StepFailed, err.Error())
				errs[i] = err
				return
			}
			runLog.Append("draft_"+strings.ToLower(docType.String()), started, domain.StepOK,
				fmt.Sprintf("%d chars, ~%d tokens", len(draft.Body), draft.Meta.OutputTokens))

			if o.annotator.Eligible(docType, reqs.DomainHint) {
				started = time.Now().UTC()
				draft, err = o.annotator.Annotate(ctx, draft, reqs)
				if err != nil {
					runLog.Append("security_review_"+strings.ToLower(docType.String()),
						started, domain.StepFailed, err.Error())
					errs[i] = err
					return
				}
				runLog.Append("security_review_"+strings.ToLower(docType.String()),
					started, domain.StepOK, "security section appended")
			}

			drafts[i] = &draft
		}(i, docType)
	}
	wg.Wait()

	var docs []domain.DraftDocument
	var failures []domain.DocumentFailure
	for i, docType := range types {
		switch {
		case drafts[i] != nil:
			docs = append(docs, *drafts[i])
		case errs[i] != nil:
			failures = append(failures, domain.DocumentFailure{
				Type:   docType,
				Kind:   domain.ErrorKind(errs[i]),
				Detail: errs[i].Error(),
			})
		}
	}
	return docs, failures
}

// persist writes the run artifacts: one file per document, the package
// summary when present, and the run log.
func (o *WorkflowOrchestrator) persist(ctx context.Context, artifacts driven.ArtifactStore, result *domain.PackageResult, runLog *domain.RunLog) error {
	for _, doc := range result.Documents {
		path, err := artifacts.WriteDocument(ctx, result.RunID, doc)
		if err != nil {
			return fmt.Errorf("persist %s: %w", doc.Type, err)
		}
		runLog.Append("persist_"+strings.ToLower(doc.Type.String()), time.Now().UTC(), domain.StepOK, path)
	}

	if result.SummaryText != "" {
		path, err := artifacts.WriteSummary(ctx, result.RunID, result.SummaryText)
		if err != nil {
			return fmt.Errorf("persist summary: %w", err)
		}
		runLog.Append("persist_summary", time.Now().UTC(), domain.StepOK, path)
	}
	return nil
}

// flush writes the run log artifact and the run history row. Both are best
// effort: a failing audit write must not mask the run outcome.
func (o *WorkflowOrchestrator) flush(artifacts driven.ArtifactStore, runLog *domain.RunLog, record domain.RunRecord) {
	if _, err := artifacts.WriteRunLog(context.Background(), runLog); err != nil {
		logger.Warn("write run log: %v", err)
	}
	if o.runs == nil {
		return
	}
	ctx := context.Background()
	if err := o.runs.SaveRun(ctx, record); err != nil {
		logger.Warn("save run record: %v", err)
		return
	}
	if err := o.runs.SaveSteps(ctx, record.ID, runLog.Steps()); err != nil {
		logger.Warn("save run steps: %v", err)
	}
}

// renderCodeContext combines the researcher analysis and the raw outline
// into the shared drafting context block.
func renderCodeContext(code codeContext) string {
	if code.summary.Text == "" {
		return ""
	}
	if code.analysis == "" {
		return code.summary.Text
	}
	return code.analysis + "\n\n" + code.summary.Text
}

// summarizeRequest renders the acceptance log detail.
func summarizeRequest(req domain.Request) string {
	parts := []string{fmt.Sprintf("request=%q", req.RawText)}
	if req.CodeDir != "" {
		parts = append(parts, "code_dir="+req.CodeDir)
	}
	if len(req.CodeFiles) > 0 {
		parts = append(parts, fmt.Sprintf("files=%d", len(req.CodeFiles)))
	}
	if req.ForcedType != "" {
		parts = append(parts, "forced_type="+req.ForcedType.String())
	}
	if req.Interactive {
		parts = append(parts, "interactive")
	}
	return strings.Join(parts, " ")
}

// firstFailureErr maps the first recorded failure back to its sentinel so
// the caller sees a classified error when every type failed.
func firstFailureErr(failures []domain.DocumentFailure) error {
	if len(failures) == 0 {
		return domain.ErrPartialFailure
	}
	switch failures[0].Kind {
	case "auth":
		return domain.ErrAuth
	case "rate_limited":
		return domain.ErrRateLimited
	case "model_unavailable":
		return domain.ErrModelUnavailable
	case "timeout":
		return domain.ErrTimeout
	case "malformed_response":
		return domain.ErrMalformedResponse
	default:
		return domain.ErrPartialFailure
	}
}
