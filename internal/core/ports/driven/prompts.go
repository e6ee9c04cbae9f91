package driven

// PromptStore provides access to role prompt templates.
// Implementations may load prompts from user-editable files with embedded
// defaults, and may invalidate their cache when files change on disk.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names. These constants define the contract between
// prompt consumers and providers.
const (
	// PromptDispatch triages a request and detects ambiguity.
	// Expects one %s placeholder for the request text.
	PromptDispatch = "dispatch"

	// PromptRequirements extracts a structured requirement set.
	// Expects two %s placeholders: request text and code summary block.
	PromptRequirements = "requirements"

	// PromptCodeResearch analyses a code structure outline.
	// Expects one %s placeholder for the outline.
	PromptCodeResearch = "code_research"

	// PromptDraft drafts one document body. Expects four %s placeholders:
	// document type description, requirements block, code summary block,
	// and the original request text.
	PromptDraft = "draft"

	// PromptSecurityReview appends a security and compliance section.
	// Expects two %s placeholders: domain hint and document body.
	PromptSecurityReview = "security_review"

	// PromptPackageSummary summarises a multi-document package.
	// Expects one %s placeholder for the document list block.
	PromptPackageSummary = "package_summary"
)

// RolePrompt returns the prompt name carrying the system persona for a role.
// Persona prompts have no format placeholders.
func RolePrompt(role string) string {
	return "role_" + role
}
