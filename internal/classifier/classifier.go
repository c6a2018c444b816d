// Package classifier maps a text to exactly one category using ordered keyword tables.
//
// A table is a list of rules scanned in priority order; within a rule, keywords are
// scanned in table order. The first keyword found as a substring of the lower-cased
// text decides the category. Unmatched and empty texts fall back to the axis's
// neutral category.
package classifier

import "strings"

// Rule pairs a category with the keywords that select it
type Rule[C comparable] struct {
	Category C
	Keywords []string
}

// Classifier is the contract shared by the sentiment, emotion and topic classifiers
type Classifier[C comparable] interface {
	Classify(text string) C
	ClassifyBatch(texts []string) []C
}

// KeywordClassifier is an immutable ordered keyword table
type KeywordClassifier[C comparable] struct {
	rules    []Rule[C]
	fallback C
}

// Ensure KeywordClassifier implements Classifier
var _ Classifier[string] = (*KeywordClassifier[string])(nil)

// NewKeywordClassifier copies the rules, lower-casing every keyword, so later
// changes to the caller's slices cannot alter classification.
func NewKeywordClassifier[C comparable](rules []Rule[C], fallback C) *KeywordClassifier[C] {
	copied := make([]Rule[C], 0, len(rules))
	for _, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, keyword := range rule.Keywords {
			if keyword = strings.ToLower(keyword); keyword != "" {
				keywords = append(keywords, keyword)
			}
		}
		copied = append(copied, Rule[C]{Category: rule.Category, Keywords: keywords})
	}

	return &KeywordClassifier[C]{rules: copied, fallback: fallback}
}

// Classify returns the category of the first rule with a keyword contained in text
func (k *KeywordClassifier[C]) Classify(text string) C {
	if text == "" {
		return k.fallback
	}

	lower := strings.ToLower(text)
	for _, rule := range k.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Category
			}
		}
	}

	return k.fallback
}

// ClassifyBatch classifies each text independently, preserving order
func (k *KeywordClassifier[C]) ClassifyBatch(texts []string) []C {
	results := make([]C, len(texts))
	for i, text := range texts {
		results[i] = k.Classify(text)
	}
	return results
}

// Fallback returns the category used when nothing matches
func (k *KeywordClassifier[C]) Fallback() C {
	return k.fallback
}

// Priority returns the rule categories in scan order
func (k *KeywordClassifier[C]) Priority() []C {
	order := make([]C, 0, len(k.rules))
	for _, rule := range k.rules {
		order = append(order, rule.Category)
	}
	return order
}
