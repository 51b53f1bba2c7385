package classifier

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Model - экспорт мультиномиального наивного Байеса.
// FeatureLogProb хранит для каждого токена log P(token|class) в порядке Classes.
type Model struct {
	Classes        []string             `json:"classes" yaml:"classes"`
	ClassLogPrior  []float64            `json:"class_log_prior" yaml:"class_log_prior"`
	FeatureLogProb map[string][]float64 `json:"feature_log_prob" yaml:"feature_log_prob"`
}

// Validate проверяет согласованность размерностей
func (m *Model) Validate() error {
	if len(m.Classes) == 0 {
		return errors.New("model has no classes")
	}
	if len(m.ClassLogPrior) != len(m.Classes) {
		return fmt.Errorf("class_log_prior has %d values for %d classes", len(m.ClassLogPrior), len(m.Classes))
	}
	for token, probs := range m.FeatureLogProb {
		if len(probs) != len(m.Classes) {
			return fmt.Errorf("feature %q has %d values for %d classes", token, len(probs), len(m.Classes))
		}
	}
	return nil
}

// Predict returns the most likely class and its posterior probability.
// Tokens missing from the vocabulary do not contribute.
func (m *Model) Predict(text string) (string, float64) {
	scores := make([]float64, len(m.Classes))
	copy(scores, m.ClassLogPrior)

	for _, token := range tokenize(text) {
		probs, ok := m.FeatureLogProb[token]
		if !ok {
			continue
		}
		for i, p := range probs {
			scores[i] += p
		}
	}

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}

	// softmax со сдвигом на максимум
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - scores[best])
	}
	return m.Classes[best], 1 / sum
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
