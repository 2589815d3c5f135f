// Package workers provides the goroutine pool used to score many
// (country, sector) pairs in parallel.
package workers

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/aristath/prism/internal/domain"
)

// ScoreJob identifies one (country, sector) pair to score.
type ScoreJob struct {
	Country string
	Sector  string
}

// ScoreFunc scores a single pair.
type ScoreFunc func(country, sector string) (domain.ScoreBreakdown, error)

// ProgressFunc reports batch progress. current counts completed jobs and is
// not ordered: workers finish jobs concurrently.
type ProgressFunc func(current, total int, message string)

// WorkerPool manages a pool of worker goroutines for parallel pair scoring
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 10 // Default to 10 workers
	}
	return &WorkerPool{
		numWorkers: numWorkers,
	}
}

// ScoreBatch scores all jobs in parallel and returns the results in input
// order. A job whose score function returns an error yields its zero-value
// breakdown with only the pair identity filled in; the batch never aborts.
func (wp *WorkerPool) ScoreBatch(jobs []ScoreJob, score ScoreFunc, progress ProgressFunc) []domain.ScoreBreakdown {
	numJobs := len(jobs)
	if numJobs == 0 {
		return []domain.ScoreBreakdown{}
	}

	jobCh := make(chan indexedJob, numJobs)
	resultCh := make(chan indexedResult, numJobs)

	numActualWorkers := wp.numWorkers
	if numJobs < numActualWorkers {
		numActualWorkers = numJobs
	}

	var completed int64
	var wg sync.WaitGroup
	for i := 0; i < numActualWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				breakdown, err := score(job.job.Country, job.job.Sector)
				if err != nil {
					breakdown = domain.ScoreBreakdown{
						Country: job.job.Country,
						Sector:  job.job.Sector,
					}
				}
				resultCh <- indexedResult{index: job.index, breakdown: breakdown}

				if progress != nil {
					done := int(atomic.AddInt64(&completed, 1))
					progress(done, numJobs, fmt.Sprintf("Scoring %s/%s", job.job.Country, job.job.Sector))
				}
			}
		}()
	}

	for idx, job := range jobs {
		jobCh <- indexedJob{index: idx, job: job}
	}
	close(jobCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]domain.ScoreBreakdown, numJobs)
	for result := range resultCh {
		results[result.index] = result.breakdown
	}

	return results
}

type indexedJob struct {
	index int
	job   ScoreJob
}

type indexedResult struct {
	index     int
	breakdown domain.ScoreBreakdown
}
