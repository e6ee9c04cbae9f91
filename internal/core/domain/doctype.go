package domain

import "strings"

// DocumentType identifies a kind of document Docsmith can produce.
type DocumentType string

// Available document types.
const (
	// DocTypeBRD is a Business Requirements Document.
	DocTypeBRD DocumentType = "BRD"

	// DocTypeFRD is a Functional Requirements Document.
	DocTypeFRD DocumentType = "FRD"

	// DocTypeNFRD is a Non-Functional Requirements Document.
	DocTypeNFRD DocumentType = "NFRD"

	// DocTypeCloud is a cloud deployment / implementation guide.
	DocTypeCloud DocumentType = "CLOUD"

	// DocTypeSecurity is a security and compliance document.
	DocTypeSecurity DocumentType = "SECURITY"

	// DocTypeAPI is API reference documentation.
	DocTypeAPI DocumentType = "API"

	// DocTypeGeneric is the fallback when no specific type matches.
	DocTypeGeneric DocumentType = "GENERIC"
)

// docTypeAliases maps alternative spellings to canonical document types.
// Model responses and user input are normalised through this table.
var docTypeAliases = map[DocumentType][]string{
	DocTypeBRD:      {"BRD", "BUSINESS", "BUSINESS_REQUIREMENTS"},
	DocTypeFRD:      {"FRD", "FUNCTIONAL", "FNRD", "FUNCTIONAL_REQUIREMENTS"},
	DocTypeNFRD:     {"NFRD", "NON_FUNCTIONAL", "NONFUNCTIONAL"},
	DocTypeCloud:    {"CLOUD", "DEPLOYMENT", "IMPLEMENTATION", "INFRASTRUCTURE"},
	DocTypeSecurity: {"SECURITY", "COMPLIANCE", "SECURITY_COMPLIANCE"},
	DocTypeAPI:      {"API", "API_DOCUMENTATION", "REST_API"},
	DocTypeGeneric:  {"GENERIC", "GENERAL", "OTHER"},
}

// AllDocumentTypes lists the canonical types in presentation order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocTypeBRD, DocTypeFRD, DocTypeNFRD,
		DocTypeCloud, DocTypeSecurity, DocTypeAPI,
	}
}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocTypeBRD, DocTypeFRD, DocTypeNFRD, DocTypeCloud,
		DocTypeSecurity, DocTypeAPI, DocTypeGeneric:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t DocumentType) Description() string {
	switch t {
	case DocTypeBRD:
		return "Business Requirements Document"
	case DocTypeFRD:
		return "Functional Requirements Document"
	case DocTypeNFRD:
		return "Non-Functional Requirements Document"
	case DocTypeCloud:
		return "Cloud Deployment Guide"
	case DocTypeSecurity:
		return "Security & Compliance Document"
	case DocTypeAPI:
		return "API Documentation"
	case DocTypeGeneric:
		return "General Documentation"
	default:
		return "Unknown"
	}
}

// NormalizeDocumentType resolves free-form input (user flags or model output)
// to a canonical document type. Unrecognised input maps to DocTypeGeneric.
func NormalizeDocumentType(raw string) DocumentType {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = strings.ReplaceAll(cleaned, "-", "_")
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	if cleaned == "" {
		return DocTypeGeneric
	}

	for canonical, aliases := range docTypeAliases {
		if cleaned == string(canonical) {
			return canonical
		}
		for _, alias := range aliases {
			if cleaned == alias {
				return canonical
			}
		}
	}

	// Loose containment match, e.g. "API_DOCS" or "SECURITY_REVIEW".
	for canonical, aliases := range docTypeAliases {
		for _, alias := range aliases {
			if strings.Contains(cleaned, alias) {
				return canonical
			}
		}
	}

	return DocTypeGeneric
}

// DomainHint classifies the application domain extracted from a request.
type DomainHint string

// Recognised domain hints. The regulated subset triggers mandatory
// security annotation for eligible document types.
const (
	DomainNone       DomainHint = ""
	DomainEcommerce  DomainHint = "ecommerce"
	DomainTrading    DomainHint = "trading"
	DomainCRM        DomainHint = "crm"
	DomainHealthcare DomainHint = "healthcare"
	DomainBanking    DomainHint = "banking"
	DomainFinance    DomainHint = "finance"
	DomainInsurance  DomainHint = "insurance"
	DomainGovernment DomainHint = "government"
	DomainEducation  DomainHint = "education"
	DomainGeneral    DomainHint = "general"
)

// regulatedDomains is the fixed allowlist of domains that require a
// security review regardless of what the user asked for in free text.
var regulatedDomains = map[DomainHint]bool{
	DomainHealthcare: true,
	DomainBanking:    true,
	DomainFinance:    true,
	DomainInsurance:  true,
	DomainGovernment: true,
}

// IsRegulated returns true if the domain is in the regulated allowlist.
func (d DomainHint) IsRegulated() bool {
	return regulatedDomains[d]
}

// NormalizeDomainHint resolves free-form model output to a known hint.
// Unrecognised values map to DomainGeneral; empty input stays DomainNone.
func NormalizeDomainHint(raw string) DomainHint {
	cleaned := DomainHint(strings.ToLower(strings.TrimSpace(raw)))
	switch cleaned {
	case DomainNone, DomainEcommerce, DomainTrading, DomainCRM,
		DomainHealthcare, DomainBanking, DomainFinance, DomainInsurance,
		DomainGovernment, DomainEducation, DomainGeneral:
		return cleaned
	default:
		return DomainGeneral
	}
}

// SecurityAnnotationRequired is the fixed eligibility rule for the security
// annotator. SECURITY and CLOUD documents are always annotated; FRD only when
// the domain is regulated. BRD is never annotated, whatever the domain says.
func SecurityAnnotationRequired(t DocumentType, hint DomainHint) bool {
	switch t {
	case DocTypeSecurity, DocTypeCloud:
		return true
	case DocTypeFRD:
		return hint.IsRegulated()
	default:
		return false
	}
}
