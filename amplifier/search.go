package amplifier

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Result defines the outcome of a phase setting search.
type Result struct {
	Signal int64   // Highest signal found.
	Phases []int64 // Phase order producing it.
}

// MaxSignal evaluates every ordering of phaseSet and returns the one
// producing the highest signal. At most workers orderings run at the same
// time; workers <= 0 means no limit. Among equal signals the ordering
// generated first wins.
//
// Orderings which fail are reported together as an ErrorSet. A cancelled
// context aborts the search with the context's error.
func (c *Circuit) MaxSignal(ctx context.Context, phaseSet []int64, workers int) (Result, error) {
	if len(phaseSet) != c.stages {
		return Result{}, errors.Errorf("amplifier: want %d phase settings, have %d", c.stages, len(phaseSet))
	}

	perms := Permutations(phaseSet)
	signals := make([]int64, len(perms))
	failures := make([]error, len(perms))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := range perms {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			signal, err := c.Signal(perms[i])
			if err != nil {
				failures[i] = errors.Wrapf(err, "phases %v", perms[i])
				return nil
			}

			signals[i] = signal
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var errorset ErrorSet
	for _, err := range failures {
		if err != nil {
			errorset.Append(err)
		}
	}

	if errorset.Len() > 0 {
		return Result{}, errorset
	}

	best := 0
	for i := range signals {
		if signals[i] > signals[best] {
			best = i
		}
	}

	return Result{
		Signal: signals[best],
		Phases: perms[best],
	}, nil
}

// Permutations returns every ordering of set, generated with Heap's
// algorithm. The first ordering is set itself. The input is not modified.
func Permutations(set []int64) [][]int64 {
	a := clone(set)
	out := [][]int64{clone(a)}
	c := make([]int, len(a))

	for i := 1; i < len(a); {
		if c[i] >= i {
			c[i] = 0
			i++
			continue
		}

		if i%2 == 0 {
			a[0], a[i] = a[i], a[0]
		} else {
			a[c[i]], a[i] = a[i], a[c[i]]
		}

		out = append(out, clone(a))
		c[i]++
		i = 1
	}

	return out
}

// clone returns a non-nil copy of v.
func clone(v []int64) []int64 {
	c := make([]int64, len(v))
	copy(c, v)
	return c
}
