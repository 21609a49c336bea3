package questions

import (
	"math/rand/v2"
	"slices"

	"intervu/internal/errors"
)

// MaxQuestions caps a single session.
const MaxQuestions = 20

// Sample picks n questions for field. It first takes one random question from
// each category in interview order, then keeps cycling through the categories,
// drawing an unused random question from each, until n questions are chosen
// or the field runs out. Category order is preserved; the result is never
// shuffled. When n is smaller than the number of categories the first n
// categories win.
func (b *Bank) Sample(field string, n int, rng *rand.Rand) ([]Question, error) {
	if !b.HasField(field) {
		return nil, unknownField(field)
	}
	if n < 1 || n > MaxQuestions {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "question count out of range", nil).
			WithContext("count", n).
			WithContext("max", MaxQuestions)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	categories := b.Categories(field)
	pools := make(map[string][]string, len(categories))
	for _, cat := range categories {
		pools[cat] = slices.Clone(b.questions(field, cat))
	}

	draw := func(cat string) Question {
		pool := pools[cat]
		i := rng.IntN(len(pool))
		q := pool[i]
		pools[cat] = slices.Delete(pool, i, i+1)
		return Question{Category: cat, Text: q}
	}

	picked := make([]Question, 0, n)
	for _, cat := range categories {
		if len(picked) == n {
			return picked, nil
		}
		picked = append(picked, draw(cat))
	}

	var extra []Question
	for len(picked)+len(extra) < n {
		progressed := false
		for _, cat := range categories {
			if len(picked)+len(extra) == n {
				break
			}
			if len(pools[cat]) == 0 {
				continue
			}
			extra = append(extra, draw(cat))
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return append(picked, extra...), nil
}
