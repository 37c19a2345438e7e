package orchestration

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockTask simulates various task behaviors for deadlock testing.
type mockTask struct {
	name     string
	behavior string // "instant", "slow", "error", "blocking"
	delay    time.Duration
}

func (m *mockTask) run(ctx context.Context) (string, error) {
	switch m.behavior {
	case "slow":
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(m.delay):
			}
		}
	case "error":
		return "", errors.New("simulated error")
	case "blocking":
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.name, nil
}

func (m *mockTask) task() Task { return Task{Name: m.name, Run: m.run} }

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that Execute completes
// without deadlocking under various task behavior combinations.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name  string
		tasks []*mockTask
	}{
		{
			name: "all_instant",
			tasks: []*mockTask{
				{name: "t1", behavior: "instant"},
				{name: "t2", behavior: "instant"},
				{name: "t3", behavior: "instant"},
			},
		},
		{
			name: "mixed_instant_and_slow",
			tasks: []*mockTask{
				{name: "fast", behavior: "instant"},
				{name: "slow", behavior: "slow", delay: time.Millisecond},
			},
		},
		{
			name: "error_with_blocking_sibling",
			tasks: []*mockTask{
				{name: "blocked", behavior: "blocking"},
				{name: "err", behavior: "error"},
			},
		},
		{
			name:  "single_task",
			tasks: []*mockTask{{name: "solo", behavior: "instant"}},
		},
		{
			name:  "no_tasks",
			tasks: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			tasks := make([]Task, len(tc.tasks))
			for i, m := range tc.tasks {
				tasks[i] = m.task()
			}

			done := make(chan struct{})
			go func() {
				defer close(done)
				_, _ = Execute(ctx, tasks)
			}()

			select {
			case <-done:
				// Success - no deadlock
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: Execute did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	tasks := []Task{
		(&mockTask{name: "slow1", behavior: "slow", delay: 100 * time.Millisecond}).task(),
		(&mockTask{name: "slow2", behavior: "slow", delay: 100 * time.Millisecond}).task(),
	}

	done := make(chan error, 1)
	go func() {
		_, err := Join(ctx, nil, tasks...)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}
