// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Cargo manifest checks

package validate

import (
	"fmt"
	"strings"
)

// CargoManifestCheck verifies Cargo.toml files carry the sections and
// dependencies an Anchor program needs
type CargoManifestCheck struct{}

func (CargoManifestCheck) Name() string { return "cargo-manifest" }

func (CargoManifestCheck) Run(files map[string]string) []string {
	var errors []string
	for _, path := range sortedKeys(files) {
		if !strings.HasSuffix(path, "Cargo.toml") {
			continue
		}
		content := files[path]

		if !strings.Contains(content, "[dependencies]") && !strings.Contains(content, "[lib]") {
			errors = append(errors, fmt.Sprintf("%s: Missing expected sections", path))
		}

		// Only the program manifest needs anchor-lang; the workspace
		// root manifest does not.
		if strings.Contains(path, "programs") && !strings.Contains(content, "anchor-lang") {
			errors = append(errors, fmt.Sprintf("%s: Missing anchor-lang dependency", path))
		}
	}
	return errors
}
