package domain

// RequirementSet is the structured output of requirement extraction.
// It is produced exactly once per request and shared read-only across
// all concurrent document generations.
type RequirementSet struct {
	// Features is the ordered list of extracted requirements.
	Features []string

	// DomainHint is the classified application domain, or DomainNone.
	DomainHint DomainHint

	// RecommendedTypes are the document types the dispatcher suggests.
	RecommendedTypes []DocumentType

	// ClarificationNeeded indicates the request is too ambiguous to proceed.
	ClarificationNeeded bool

	// OpenQuestions are the clarification questions to put to the user,
	// populated only when ClarificationNeeded is true.
	OpenQuestions []string
}

// TypesToGenerate resolves which document types a run should produce.
// A forced type always wins; otherwise the recommendations apply, with
// GENERIC as the last resort so a run never produces nothing.
func (s RequirementSet) TypesToGenerate(forced DocumentType) []DocumentType {
	if forced != "" {
		return []DocumentType{forced}
	}
	if len(s.RecommendedTypes) > 0 {
		// De-duplicate while preserving order.
		seen := make(map[DocumentType]bool, len(s.RecommendedTypes))
		types := make([]DocumentType, 0, len(s.RecommendedTypes))
		for _, t := range s.RecommendedTypes {
			if t.IsValid() && !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
		if len(types) > 0 {
			return types
		}
	}
	return []DocumentType{DocTypeGeneric}
}
