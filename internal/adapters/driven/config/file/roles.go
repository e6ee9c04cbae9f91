package file

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/services"
)

// rolesFile is the YAML shape of a roles override file:
//
//	roles:
//	  technical_writer:
//	    temperature: 0.8
//	    max_tokens: 8192
type rolesFile struct {
	Roles map[string]roleEntry `yaml:"roles"`
}

type roleEntry struct {
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`
}

// LoadRoleOverrides reads per-role generation overrides from a YAML file.
// A missing file is not an error: every role keeps its defaults. Unknown
// role names are rejected so typos do not silently no-op.
func LoadRoleOverrides(path string) (map[domain.Role]services.RoleOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read roles file: %w", err)
	}

	var parsed rolesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse roles file %s: %w", path, err)
	}

	overrides := make(map[domain.Role]services.RoleOverride, len(parsed.Roles))
	for name, entry := range parsed.Roles {
		role := domain.Role(name)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q in %s", domain.ErrValidation, name, path)
		}
		if entry.Temperature != nil && (*entry.Temperature < 0 || *entry.Temperature > 2) {
			return nil, fmt.Errorf("%w: role %q temperature %v out of range", domain.ErrValidation, name, *entry.Temperature)
		}
		if entry.MaxTokens != nil && *entry.MaxTokens <= 0 {
			return nil, fmt.Errorf("%w: role %q max_tokens must be positive", domain.ErrValidation, name)
		}
		overrides[role] = services.RoleOverride{
			Temperature: entry.Temperature,
			MaxTokens:   entry.MaxTokens,
		}
	}
	return overrides, nil
}
