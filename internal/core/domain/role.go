package domain

// Role identifies one of the fixed LLM personas in the generation workflow.
type Role string

// The six workflow roles, plus the finalizer's package summary persona.
const (
	// RoleDispatcher triages requests and detects ambiguity.
	RoleDispatcher Role = "dispatcher"

	// RoleAnalyst extracts structured requirements.
	RoleAnalyst Role = "requirement_analyst"

	// RoleResearcher analyses source code context.
	RoleResearcher Role = "code_researcher"

	// RoleWriter drafts document bodies.
	RoleWriter Role = "technical_writer"

	// RoleSecurityReviewer appends security and compliance sections.
	RoleSecurityReviewer Role = "security_reviewer"

	// RoleEditor normalises and polishes final output.
	RoleEditor Role = "editor_formatter"
)

// AllRoles lists the workflow roles in pipeline order.
func AllRoles() []Role {
	return []Role{
		RoleDispatcher, RoleAnalyst, RoleResearcher,
		RoleWriter, RoleSecurityReviewer, RoleEditor,
	}
}

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleDispatcher, RoleAnalyst, RoleResearcher,
		RoleWriter, RoleSecurityReviewer, RoleEditor:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// DefaultTemperature returns the sampling temperature each role runs at
// unless overridden in the role definitions file.
func (r Role) DefaultTemperature() float64 {
	switch r {
	case RoleDispatcher, RoleResearcher:
		return 0.3
	case RoleSecurityReviewer:
		return 0.4
	case RoleWriter:
		return 0.7
	default:
		return 0.5
	}
}
