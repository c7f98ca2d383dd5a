/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cbc

import (
	"regexp"
	"strings"
)

var whitespaceRunPattern = regexp.MustCompile(`[\x{00A0}\t]+`)

// NormalizeLines turns raw OCR output into a clean ordered line
// sequence: carriage returns become newlines, non-breaking spaces and
// tabs collapse to single spaces, and blank lines are dropped.
func NormalizeLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r", "\n")
	normalized = whitespaceRunPattern.ReplaceAllString(normalized, " ")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
