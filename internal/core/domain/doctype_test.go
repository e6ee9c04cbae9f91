package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDocumentType(t *testing.T) {
	tests := []struct {
		input string
		want  DocumentType
	}{
		{"BRD", DocTypeBRD},
		{"brd", DocTypeBRD},
		{"business", DocTypeBRD},
		{"Business Requirements", DocTypeBRD},
		{"FRD", DocTypeFRD},
		{"functional", DocTypeFRD},
		{"functional-requirements", DocTypeFRD},
		{"NFRD", DocTypeNFRD},
		{"non_functional", DocTypeNFRD},
		{"nonfunctional", DocTypeNFRD},
		{"cloud", DocTypeCloud},
		{"deployment", DocTypeCloud},
		{"infrastructure", DocTypeCloud},
		{"security", DocTypeSecurity},
		{"compliance", DocTypeSecurity},
		{"api", DocTypeAPI},
		{"rest-api", DocTypeAPI},
		{"API documentation", DocTypeAPI},
		{"generic", DocTypeGeneric},

		// Loose containment matches.
		{"api_docs", DocTypeAPI},
		{"security_review", DocTypeSecurity},

		// Unrecognised input falls back to GENERIC.
		{"", DocTypeGeneric},
		{"   ", DocTypeGeneric},
		{"novel", DocTypeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDocumentType(tt.input))
		})
	}
}

func TestDocumentType_IsValid(t *testing.T) {
	for _, dt := range AllDocumentTypes() {
		assert.True(t, dt.IsValid(), "type %s", dt)
	}
	assert.True(t, DocTypeGeneric.IsValid())
	assert.False(t, DocumentType("NOVEL").IsValid())
	assert.False(t, DocumentType("").IsValid())
}

func TestDocumentType_Description(t *testing.T) {
	for _, dt := range AllDocumentTypes() {
		assert.NotEqual(t, "Unknown", dt.Description(), "type %s", dt)
	}
	assert.Equal(t, "Unknown", DocumentType("NOVEL").Description())
}

func TestNormalizeDomainHint(t *testing.T) {
	assert.Equal(t, DomainHealthcare, NormalizeDomainHint("Healthcare"))
	assert.Equal(t, DomainBanking, NormalizeDomainHint("  banking  "))
	assert.Equal(t, DomainNone, NormalizeDomainHint(""))

	// Anything unrecognised is classified as general, never dropped.
	assert.Equal(t, DomainGeneral, NormalizeDomainHint("aerospace"))
}

func TestDomainHint_IsRegulated(t *testing.T) {
	regulated := []DomainHint{DomainHealthcare, DomainBanking, DomainFinance, DomainInsurance, DomainGovernment}
	for _, d := range regulated {
		assert.True(t, d.IsRegulated(), "domain %s", d)
	}

	for _, d := range []DomainHint{DomainNone, DomainEcommerce, DomainTrading, DomainCRM, DomainEducation, DomainGeneral} {
		assert.False(t, d.IsRegulated(), "domain %s", d)
	}
}

func TestSecurityAnnotationRequired(t *testing.T) {
	tests := []struct {
		name string
		typ  DocumentType
		hint DomainHint
		want bool
	}{
		{"SECURITY always", DocTypeSecurity, DomainNone, true},
		{"SECURITY regulated", DocTypeSecurity, DomainBanking, true},
		{"CLOUD always", DocTypeCloud, DomainEcommerce, true},
		{"FRD regulated", DocTypeFRD, DomainHealthcare, true},
		{"FRD unregulated", DocTypeFRD, DomainEcommerce, false},
		{"FRD no domain", DocTypeFRD, DomainNone, false},
		{"BRD never", DocTypeBRD, DomainBanking, false},
		{"NFRD never", DocTypeNFRD, DomainGovernment, false},
		{"API never", DocTypeAPI, DomainFinance, false},
		{"GENERIC never", DocTypeGeneric, DomainInsurance, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SecurityAnnotationRequired(tt.typ, tt.hint))
		})
	}
}
