package career

import (
	"encoding/json"
	"slices"
)

// DataCompleteness reports how many answers back an aggregate.
type DataCompleteness struct {
	QuestionsAnswered int             `json:"questionsAnswered"`
	ConfidenceLevel   ConfidenceLevel `json:"confidenceLevel"`
}

// AggregateScores maps each score category to its discounted mean. It encodes
// as a flat JSON object with an extra "dataCompleteness" key; an aggregate of
// no records encodes as {}.
type AggregateScores struct {
	Categories       map[string]float64
	DataCompleteness *DataCompleteness
}

// Get returns the aggregate for a category.
func (a AggregateScores) Get(category string) (float64, bool) {
	v, ok := a.Categories[category]
	return v, ok
}

// IsEmpty reports whether no records contributed.
func (a AggregateScores) IsEmpty() bool {
	return len(a.Categories) == 0 && a.DataCompleteness == nil
}

// Keys returns the categories present, known categories first in display order.
func (a AggregateScores) Keys() []string {
	keys := make([]string, 0, len(a.Categories))
	for _, c := range Categories {
		if _, ok := a.Categories[c]; ok {
			keys = append(keys, c)
		}
	}
	var extra []string
	for k := range a.Categories {
		if !slices.Contains(Categories, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

const dataCompletenessKey = "dataCompleteness"

func (a AggregateScores) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(a.Categories)+1)
	for k, v := range a.Categories {
		m[k] = v
	}
	if a.DataCompleteness != nil {
		m[dataCompletenessKey] = a.DataCompleteness
	}
	return json.Marshal(m)
}

func (a *AggregateScores) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = AggregateScores{}
	for k, v := range raw {
		if k == dataCompletenessKey {
			var dc DataCompleteness
			if err := json.Unmarshal(v, &dc); err != nil {
				return err
			}
			a.DataCompleteness = &dc
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return err
		}
		if a.Categories == nil {
			a.Categories = make(map[string]float64)
		}
		a.Categories[k] = f
	}
	return nil
}

// Aggregate averages each score category over the records that carry it,
// applies the record-count confidence discount, floors at 1 and rounds to one
// decimal place.
//
// The divisor is per category: a record without a category does not pull that
// category's mean down. Dividing by every record that has any scores would
// treat a missing category as zero.
func Aggregate(set EvaluationSet) AggregateScores {
	n := set.Len()
	if n == 0 {
		return AggregateScores{}
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, rec := range set.records {
		for category, score := range rec.Scores {
			sums[category] += score
			counts[category]++
		}
	}

	factor := scoreDiscount.factor(n)
	categories := make(map[string]float64, len(sums))
	for category, sum := range sums {
		mean := float64(sum) / float64(counts[category])
		categories[category] = round1(max(1, mean*factor))
	}

	return AggregateScores{
		Categories: categories,
		DataCompleteness: &DataCompleteness{
			QuestionsAnswered: n,
			ConfidenceLevel:   ConfidenceFor(n),
		},
	}
}
