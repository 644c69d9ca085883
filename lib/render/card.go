// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"regexp"
	"strings"
)

// referencePattern matches ${name} references in template text. Only
// the braced form is recognized — a bare $name stays literal. Names
// are word-character runs, matching the field key grammar.
var referencePattern = regexp.MustCompile(`\$\{([0-9A-Za-z_]+)\}`)

// Card expands one card by replacing every ${name} reference in the
// template with its environment value. References with no value are
// collected into a single error so a broken deck reports every missing
// name at once rather than one per run.
func Card(template string, env map[string]string) (string, error) {
	var unresolved []string
	seen := make(map[string]bool)

	result := referencePattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := env[name]; ok {
			return value
		}
		if !seen[name] {
			seen[name] = true
			unresolved = append(unresolved, name)
		}
		return match
	})

	if len(unresolved) > 0 {
		return "", fmt.Errorf("unresolved template references: %s", strings.Join(unresolved, ", "))
	}
	return result, nil
}
