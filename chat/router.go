/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package chat answers free-text questions about an analyzed CBC
// report using ordered keyword routing over canned and templated
// responses.
package chat

import (
	"strings"

	"github.com/hemolens/hemolens/cbc"
)

// fallbackResponse is returned when no category matches or a
// generator panics.
const fallbackResponse = "I'm here to help you understand your CBC report. Please ask me about your specific results!"

var (
	whatToDoKeywords = []string{"what to do", "what should i do", "how to", "suggest", "advice", "recommend", "treatment", "improve", "fix"}
	highLowKeywords  = []string{"high", "low", "elevated", "decreased", "why is", "what if", "above", "below"}
	whatIsKeywords   = []string{"what is", "explain", "tell me about", "meaning of", "define"}
	myValueKeywords  = []string{"my", "level", "value", "result", "count", "reading", "score"}
	rangeKeywords    = []string{"normal", "range", "reference", "should be"}
	summaryKeywords  = []string{"summary", "overview", "overall", "report", "everything", "all results", "full report"}
	worryKeywords    = []string{"worried", "concern", "dangerous", "serious", "risk", "problem", "should i be"}
	compareKeywords  = []string{"compare", "difference", "versus", "vs", "better", "worse"}
)

// Answer routes a question to the first matching response category.
// It never propagates a panic from a generator; malformed input
// degrades to the generic fallback.
func Answer(question string, report cbc.ParsedReport, assessment cbc.Assessment) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("response generation failed", "panic", r)
			answer = fallbackResponse
		}
	}()

	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return fallbackResponse
	}

	if containsAnyPhrase(q, concernPhrases) {
		return reassurance(q, assessment)
	}

	if containsAnyPhrase(q, healthCheckPhrases) {
		return overallStatus(assessment)
	}

	for _, c := range casualReplies {
		if containsWord(q, c.phrase) {
			return c.response
		}
	}

	if containsAnyPhrase(q, whatToDoKeywords) {
		return whatToDo(q, assessment)
	}

	if containsAnyPhrase(q, highLowKeywords) {
		if resp := highLowAdvice(q, assessment); resp != "" {
			return resp
		}
	}

	if containsAnyPhrase(q, whatIsKeywords) {
		if resp := explanation(q, assessment); resp != "" {
			return resp
		}
	}

	if containsAnyPhrase(q, myValueKeywords) {
		if resp := valueResponse(q, assessment); resp != "" {
			return resp
		}
	}

	if containsAnyPhrase(q, rangeKeywords) {
		if resp := valueResponse(q, assessment); resp != "" {
			return resp
		}
		return normalRanges()
	}

	if containsAnyPhrase(q, summaryKeywords) {
		return reportSummary(report, assessment)
	}

	if containsAnyPhrase(q, worryKeywords) {
		return reassurance(q, assessment)
	}

	if containsAnyPhrase(q, compareKeywords) {
		if resp := comparison(q, assessment); resp != "" {
			return resp
		}
	}

	if strings.Contains(q, "cbc") || strings.Contains(q, "complete blood count") {
		return cbcGeneralInfo()
	}

	return smartGuidance(q, assessment)
}
