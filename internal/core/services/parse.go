package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

// fencedJSON matches a JSON object inside a Markdown code fence.
var fencedJSON = regexp.MustCompile("(?is)```(?:json)?\\s*(\\{.+?\\})\\s*```")

// decodeModelJSON parses a JSON object out of a loosely formatted model
// response. Models wrap JSON in prose or code fences often enough that a
// direct unmarshal is only the first attempt:
//
//  1. parse the whole response as JSON
//  2. parse the first fenced ```json block
//  3. parse the first balanced {...} span found in the text
//
// Every external response is an untyped blob until one of these succeeds;
// when none does, the failure is a first-class ErrMalformedResponse.
func decodeModelJSON(response string, out any) error {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(trimmed), out); err == nil {
		return nil
	}

	if m := fencedJSON.FindStringSubmatch(trimmed); m != nil {
		if err := json.Unmarshal([]byte(m[1]), out); err == nil {
			return nil
		}
	}

	if span := balancedObject(trimmed); span != "" {
		if err := json.Unmarshal([]byte(span), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("%w: no parseable JSON object in response", domain.ErrMalformedResponse)
}

// balancedObject returns the first {...} span with balanced braces, or "".
// Braces inside JSON strings are skipped.
func balancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
