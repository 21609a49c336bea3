package career

import (
	"encoding/json"
	"slices"
)

// EvaluationSet is the ordered, duplicate-free list of records collected in one
// interview session. The zero value is an empty set. Methods never mutate the
// receiver; With returns a new set.
type EvaluationSet struct {
	records []EvaluationRecord
}

// NewEvaluationSet builds a set from records, dropping repeated (question, answer) pairs.
func NewEvaluationSet(records ...EvaluationRecord) EvaluationSet {
	var s EvaluationSet
	for _, rec := range records {
		s, _ = s.With(rec)
	}
	return s
}

// With returns a set with rec appended. The boolean is false, and the set
// unchanged, when a record for the same question and answer is already present.
func (s EvaluationSet) With(rec EvaluationRecord) (EvaluationSet, bool) {
	if s.Contains(rec.Question, rec.Answer) {
		return s, false
	}
	return EvaluationSet{records: append(slices.Clip(s.records), rec)}, true
}

// Contains reports whether a record for the pair exists.
func (s EvaluationSet) Contains(question, answer string) bool {
	_, ok := s.Find(question, answer)
	return ok
}

// Find returns the record for the pair, if present.
func (s EvaluationSet) Find(question, answer string) (EvaluationRecord, bool) {
	i := slices.IndexFunc(s.records, func(r EvaluationRecord) bool {
		return r.Question == question && r.Answer == answer
	})
	if i < 0 {
		return EvaluationRecord{}, false
	}
	return s.records[i], true
}

// Len returns the number of records.
func (s EvaluationSet) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in submission order.
func (s EvaluationSet) Records() []EvaluationRecord {
	return slices.Clone(s.records)
}

// MarshalJSON encodes the set as a JSON array.
func (s EvaluationSet) MarshalJSON() ([]byte, error) {
	if s.records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.records)
}

// UnmarshalJSON decodes a JSON array, applying the same deduplication as With.
func (s *EvaluationSet) UnmarshalJSON(data []byte) error {
	var records []EvaluationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	*s = NewEvaluationSet(records...)
	return nil
}
