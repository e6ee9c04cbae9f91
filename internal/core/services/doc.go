// Package services implements the Docsmith core workflow: requirement
// extraction, document drafting, security annotation, finalisation, and the
// orchestrator that sequences them. Services depend only on ports, never on
// concrete adapters.
package services
