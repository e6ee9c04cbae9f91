// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable role and payload prompt templates
//   - LoadRoleOverrides: YAML-based per-role generation overrides
package file
