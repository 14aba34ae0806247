package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SettleAll runs every call concurrently and waits for all of them to settle.
// A failing call never cancels the others; errs[i] holds the outcome of calls[i].
func SettleAll(ctx context.Context, calls ...func(context.Context) error) (errs []error) {
	errs = make([]error, len(calls))
	var g errgroup.Group
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			errs[i] = call(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// FirstError returns the first non-nil error of errs.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
