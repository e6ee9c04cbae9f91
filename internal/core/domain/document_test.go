package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageResult_Degraded(t *testing.T) {
	doc := DraftDocument{Type: DocTypeBRD, Body: "# BRD"}
	failure := DocumentFailure{Type: DocTypeAPI, Kind: "timeout", Detail: "upstream timeout"}

	tests := []struct {
		name   string
		result PackageResult
		want   bool
	}{
		{"all succeeded", PackageResult{Documents: []DraftDocument{doc}}, false},
		{"some failed", PackageResult{Documents: []DraftDocument{doc}, Failures: []DocumentFailure{failure}}, true},
		{"all failed", PackageResult{Failures: []DocumentFailure{failure}}, false},
		{"empty", PackageResult{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Degraded())
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 0, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 25, EstimateTokens(string(make([]byte, 100))))
}
