package async

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes tasks with at most limit running at once and returns
// the first error encountered. A failing task cancels the context passed to
// the others, and tasks not yet started are skipped. A limit below 1 means
// no limit.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "a.yaml", Func: checkA},
//	    {Name: "b.yaml", Func: checkB},
//	}
//	if err := RunParallel(ctx, 4, tasks); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, limit int, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, task := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := task.Func(ctx); err != nil {
				return fmt.Errorf("task %s failed: %w", task.Name, err)
			}
			return nil
		})
	}

	return g.Wait()
}
