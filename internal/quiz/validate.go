package quiz

import (
	"fmt"
	"sort"
	"strings"
)

// optionKeys are the only selectable answer letters.
var optionKeys = []string{"A", "B", "C", "D"}

func isOptionKey(value string) bool {
	for _, key := range optionKeys {
		if value == key {
			return true
		}
	}
	return false
}

// NormalizeAnswer trims surrounding whitespace and upper-cases a submitted
// answer so " b " grades the same as "B".
func NormalizeAnswer(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateQuestionsFormat is the pre-flight guard run before grading: every
// question must carry its text, options and correct key. It returns false
// rather than failing hard; the authoritative schema check lives on the bank.
func ValidateQuestionsFormat(questions map[string]Question) bool {
	if questions == nil {
		return false
	}

	for id, question := range questions {
		if id == "" {
			return false
		}
		if question.Text == "" {
			return false
		}
		if question.Options == nil {
			return false
		}
		if question.Correct == "" {
			return false
		}
	}

	return true
}

// ValidateAnswerSet decides whether an untrusted answer submission is safe and
// complete to grade. Rules run in order and stop at the first failure:
// the submission must be a non-nil map, its key set must exactly match the
// question bank (unexpected keys double as a tamper signal), every value must
// be a string, and every value must normalize to one of A, B, C or D.
func ValidateAnswerSet(answers map[string]any, questions map[string]Question) (bool, string) {
	if answers == nil {
		return false, "answers must be a map"
	}

	var missing, extra []string
	for id := range questions {
		if _, ok := answers[id]; !ok {
			missing = append(missing, id)
		}
	}
	for key := range answers {
		if _, ok := questions[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)

		var parts []string
		if len(missing) > 0 {
			parts = append(parts, "missing answers for: "+strings.Join(missing, ", "))
		}
		if len(extra) > 0 {
			parts = append(parts, "unexpected answer keys: "+strings.Join(extra, ", "))
		}
		return false, strings.Join(parts, "; ")
	}

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		value, ok := answers[id].(string)
		if !ok {
			return false, fmt.Sprintf("answer for %s must be a string", id)
		}
		if letter := NormalizeAnswer(value); !isOptionKey(letter) {
			return false, fmt.Sprintf("invalid answer %q for %s, must be one of: %s", value, id, strings.Join(optionKeys, ", "))
		}
	}

	return true, ""
}
