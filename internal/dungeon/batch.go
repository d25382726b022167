package dungeon

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GenerateBatch builds one dungeon per entry of params concurrently. Each
// run owns its own source and Dungeon; nothing is shared but the Generator.
//
// Postcondition: On success result[i] was generated from params[i]. On the
// first failure the remaining unstarted runs are skipped and the error is
// returned.
func GenerateBatch(ctx context.Context, gen *Generator, params []Params) ([]*Dungeon, error) {
	out := make([]*Dungeon, len(params))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range params {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := gen.Generate(p)
			if err != nil {
				return fmt.Errorf("generating dungeon %d: %w", i, err)
			}
			out[i] = d
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
