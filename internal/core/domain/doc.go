// Package domain contains the core business entities and rules for Docsmith.
// This package has no dependencies on infrastructure or frameworks.
package domain
