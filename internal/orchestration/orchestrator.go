package orchestration

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// TaskFunc produces one value. It must return promptly once ctx is done.
type TaskFunc func(ctx context.Context) (string, error)

// Task is a named unit of work submitted to Execute.
type Task struct {
	// Name identifies the task in results and logs (e.g., "joke-1").
	Name string
	Run  TaskFunc
}

// TaskResult encapsulates the outcome of a single task.
type TaskResult struct {
	Name     string
	Value    string
	Duration time.Duration
	// Err is nil when the task succeeded.
	Err error
}

// ObserveFunc receives the outcome of every task once all of them returned.
type ObserveFunc func(TaskResult)

// Execute runs every task concurrently and waits for all of them.
//
// Results are returned in the order the tasks were given, regardless of
// completion order. The first task to fail cancels the context passed to the
// others; that error is returned alongside the full result slice.
func Execute(ctx context.Context, tasks []Task) ([]TaskResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]TaskResult, len(tasks))

	for i, task := range tasks {
		idx, task := i, task
		g.Go(func() error {
			start := time.Now()
			value, err := task.Run(ctx)
			results[idx] = TaskResult{Name: task.Name, Value: value, Duration: time.Since(start), Err: err}
			return err
		})
	}

	err := g.Wait()
	return results, err
}

// Join runs tasks concurrently and returns their values in argument order.
// observe, when non-nil, is called for each result in task order, failures
// included. If any task fails, Join returns the first error and no values.
func Join(ctx context.Context, observe ObserveFunc, tasks ...Task) ([]string, error) {
	results, err := Execute(ctx, tasks)
	if observe != nil {
		for _, r := range results {
			observe(r)
		}
	}
	if err != nil {
		return nil, err
	}
	values := make([]string, len(results))
	for i, r := range results {
		values[i] = r.Value
	}
	return values, nil
}
