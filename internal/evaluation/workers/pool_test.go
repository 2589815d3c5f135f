package workers

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/prism/internal/domain"
)

func TestNewWorkerPool(t *testing.T) {
	tests := []struct {
		name            string
		numWorkers      int
		expectedWorkers int
	}{
		{"positive workers", 5, 5},
		{"zero workers defaults to 10", 0, 10},
		{"negative workers defaults to 10", -1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.numWorkers)
			assert.Equal(t, tt.expectedWorkers, pool.numWorkers)
		})
	}
}

func TestScoreBatch_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	results := pool.ScoreBatch(nil, nil, nil)
	assert.Empty(t, results)
}

func TestScoreBatch_PreservesOrder(t *testing.T) {
	pool := NewWorkerPool(4)

	jobs := []ScoreJob{
		{Country: "US", Sector: "A"},
		{Country: "DE", Sector: "B"},
		{Country: "JP", Sector: "C"},
		{Country: "BR", Sector: "D"},
	}

	score := func(country, sector string) (domain.ScoreBreakdown, error) {
		return domain.ScoreBreakdown{Country: country, Sector: sector, Composite: float64(len(sector))}, nil
	}

	results := pool.ScoreBatch(jobs, score, nil)

	assert.Len(t, results, 4)
	for i, job := range jobs {
		assert.Equal(t, job.Country, results[i].Country)
		assert.Equal(t, job.Sector, results[i].Sector)
	}
}

func TestScoreBatch_ErrorYieldsZeroBreakdown(t *testing.T) {
	pool := NewWorkerPool(2)

	jobs := []ScoreJob{
		{Country: "US", Sector: "Good"},
		{Country: "XX", Sector: "Bad"},
	}
	score := func(country, sector string) (domain.ScoreBreakdown, error) {
		if country == "XX" {
			return domain.ScoreBreakdown{}, errors.New("boom")
		}
		return domain.ScoreBreakdown{Country: country, Sector: sector, Composite: 70}, nil
	}

	results := pool.ScoreBatch(jobs, score, nil)

	assert.Equal(t, 70.0, results[0].Composite)
	assert.Equal(t, "XX", results[1].Country)
	assert.Equal(t, 0.0, results[1].Composite)
}

func TestScoreBatch_ProgressCallback(t *testing.T) {
	pool := NewWorkerPool(3)

	jobs := []ScoreJob{
		{Country: "US", Sector: "A"},
		{Country: "DE", Sector: "B"},
		{Country: "JP", Sector: "C"},
	}
	score := func(country, sector string) (domain.ScoreBreakdown, error) {
		return domain.ScoreBreakdown{Country: country, Sector: sector}, nil
	}

	var mu sync.Mutex
	var calls int
	pool.ScoreBatch(jobs, score, func(current, total int, message string) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		assert.Equal(t, 3, total)
		assert.GreaterOrEqual(t, current, 1)
		assert.LessOrEqual(t, current, 3)
		assert.Contains(t, message, "Scoring")
	})

	assert.Equal(t, 3, calls)
}
