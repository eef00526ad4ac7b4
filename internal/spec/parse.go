// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Parsing LLM output into structured types

package spec

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when no JSON object can be located in LLM output
var ErrNoJSON = errors.New("no JSON object found in model output")

// MaxProjectNameLen bounds derived project names for anchor init
const MaxProjectNameLen = 32

var projectNameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// ParseContractSpec extracts a ContractSpec from raw LLM output.
// The model is instructed to emit bare JSON but markdown fences and
// surrounding prose are tolerated.
func ParseContractSpec(raw string) (*ContractSpec, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var cs ContractSpec
	dec := json.NewDecoder(strings.NewReader(obj))
	if err := dec.Decode(&cs); err != nil {
		return nil, fmt.Errorf("failed to decode contract spec: %w", err)
	}

	if cs.Decimals == 0 && !strings.Contains(obj, "\"decimals\"") {
		cs.Decimals = DefaultDecimals
	}

	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return &cs, nil
}

// FileSet is the generic path -> content shape agents emit
type FileSet map[string]string

// ParseFileSet extracts a file map from LLM output. Accepts either
// {"files": {path: content}} or a bare {path: content} object.
func ParseFileSet(raw string) (FileSet, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Files map[string]string `json:"files"`
	}
	if err := json.Unmarshal([]byte(obj), &wrapped); err == nil && len(wrapped.Files) > 0 {
		return wrapped.Files, nil
	}

	// Some models return an array form: {"files": [{"path":..., "content":...}]}
	var listed struct {
		Files []struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(obj), &listed); err == nil && len(listed.Files) > 0 {
		fs := make(FileSet, len(listed.Files))
		for _, f := range listed.Files {
			if f.Path != "" {
				fs[f.Path] = f.Content
			}
		}
		return fs, nil
	}

	// Bare map fallback
	var bare map[string]string
	if err := json.Unmarshal([]byte(obj), &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	return nil, fmt.Errorf("%w: output is not a file map", ErrNoJSON)
}

// Patch is a single repair edit: full replacement content for one file
type Patch struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Reason  string `json:"reason,omitempty"`
}

// ParsePatches extracts repair patches from LLM output. Accepts
// {"patches": [...]} or a {"files": ...} map. A bare object without
// either key is not treated as a file map: a refusal like
// {"analysis": "..."} must not turn into a patch.
func ParsePatches(raw string) ([]Patch, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &probe); err != nil {
		return nil, fmt.Errorf("failed to decode patches: %w", err)
	}

	if rawPatches, ok := probe["patches"]; ok {
		var listed []Patch
		if err := json.Unmarshal(rawPatches, &listed); err != nil {
			return nil, fmt.Errorf("failed to decode patches: %w", err)
		}
		patches := make([]Patch, 0, len(listed))
		for _, p := range listed {
			if p.Path != "" && p.Content != "" {
				patches = append(patches, p)
			}
		}
		return patches, nil
	}

	if _, ok := probe["files"]; !ok {
		return nil, fmt.Errorf("%w: output has neither patches nor files", ErrNoJSON)
	}
	files, err := ParseFileSet(obj)
	if err != nil {
		return nil, err
	}
	patches := make([]Patch, 0, len(files))
	for path, content := range files {
		patches = append(patches, Patch{Path: path, Content: content})
	}
	return patches, nil
}

// ExtractJSONObject locates the first balanced JSON object in content,
// stripping markdown code fences first.
func ExtractJSONObject(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return content[start : i+1], nil
				}
			}
		}
	}

	return "", fmt.Errorf("%w: unbalanced JSON object", ErrNoJSON)
}

// DeriveProjectName produces a name usable with anchor init from the
// token name: lowercase, underscores, bounded length.
func DeriveProjectName(tokenName string) string {
	name := projectNameSanitizer.ReplaceAllString(strings.ToLower(tokenName), "_")
	name = strings.Trim(name, "_")
	if len(name) > MaxProjectNameLen {
		name = name[:MaxProjectNameLen]
		name = strings.Trim(name, "_")
	}
	if name == "" {
		return "solana_contract"
	}
	return name
}
