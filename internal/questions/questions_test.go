package questions

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervu/internal/errors"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestDefaultBankFields(t *testing.T) {
	b := Default()

	assert.Equal(t, []string{
		"Software Engineering", "Data Science/Analysis", "Project Management",
		"UX/UI Design", "IT Support", "Cybersecurity",
	}, b.Fields())
	assert.Equal(t, CategoryOrder, b.Categories("Software Engineering"))
}

func TestSampleStratifiedOrder(t *testing.T) {
	b := Default()

	got, err := b.Sample("Software Engineering", 7, seeded(1))
	require.NoError(t, err)
	require.Len(t, got, 7)

	var cats []string
	for _, q := range got {
		cats = append(cats, q.Category)
	}
	assert.Equal(t, []string{
		CategoryBackground, CategoryTechnical, CategoryBehavioral, CategoryRoleSpecific,
		CategoryTechnical, CategoryBehavioral, CategoryRoleSpecific,
	}, cats)
	assert.Equal(t, "Tell me more about yourself and why you're interested in this field.", got[0].Text)

	seen := map[string]bool{}
	for _, q := range got {
		assert.False(t, seen[q.Text], "duplicate question %q", q.Text)
		seen[q.Text] = true
	}
}

func TestSampleFewerThanCategories(t *testing.T) {
	got, err := Default().Sample("Cybersecurity", 2, seeded(2))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, CategoryBackground, got[0].Category)
	assert.Equal(t, CategoryTechnical, got[1].Category)
}

func TestSampleExhaustsField(t *testing.T) {
	bank, err := Parse([]byte(`
common:
  Background: ["Tell me about yourself."]
fields:
  - name: Tiny
    categories:
      Technical: ["T1", "T2"]
      Behavioral: ["B1"]
`))
	require.NoError(t, err)

	got, err := bank.Sample("Tiny", 10, seeded(3))
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestSampleIsReproducibleWithSeed(t *testing.T) {
	a, err := Default().Sample("Data Science/Analysis", 6, seeded(42))
	require.NoError(t, err)
	b, err := Default().Sample("Data Science/Analysis", 6, seeded(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleErrors(t *testing.T) {
	_, err := Default().Sample("Astronaut", 3, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = Default().Sample("IT Support", 0, nil)
	assert.Error(t, err)

	_, err = Default().Sample("IT Support", MaxQuestions+1, nil)
	assert.Error(t, err)
}

func TestParseRejectsInvalidBanks(t *testing.T) {
	tests := map[string]string{
		"not yaml":       "fields: [",
		"no fields":      "common: {}",
		"unnamed field":  "fields:\n  - categories:\n      Technical: [q]",
		"duplicate":      "fields:\n  - name: A\n    categories: {Technical: [q]}\n  - name: A\n    categories: {Technical: [q]}",
		"empty category": "fields:\n  - name: A\n    categories: {Technical: []}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestQuestionsListsWholeField(t *testing.T) {
	all, err := Default().Questions("IT Support")
	require.NoError(t, err)
	assert.Len(t, all, 17)
}

func TestSourceReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields:\n  - name: First\n    categories: {Technical: [q1]}\n"), 0o600))

	src, err := NewSource(path, nil)
	require.NoError(t, err)
	src.debounce = 10 * time.Millisecond
	var hooked atomic.Int64
	src.OnReload(func(err error) {
		if err == nil {
			hooked.Add(1)
		}
	})
	assert.Equal(t, []string{"First"}, src.Bank().Fields())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("fields:\n  - name: Second\n    categories: {Technical: [q2]}\n"), 0o600))

	assert.Eventually(t, func() bool {
		return src.Bank().HasField("Second")
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, src.Reloads(), int64(1))
	assert.Eventually(t, func() bool { return hooked.Load() >= 1 }, time.Second, 10*time.Millisecond)
}

func TestSourceKeepsBankOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields:\n  - name: Keep\n    categories: {Technical: [q]}\n"), 0o600))

	src, err := NewSource(path, nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("fields: ["), 0o600))

	assert.Error(t, src.Reload())
	assert.True(t, src.Bank().HasField("Keep"))
}
