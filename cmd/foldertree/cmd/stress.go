package cmd

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/foldertree/foldertree/tree"
)

var (
	stressWorkers int
	stressOps     int
)

// stressCmd hammers one shared tree from many goroutines, each
// confined to its own top-level sibling so that the workload mostly
// exercises disjoint subtrees concurrently, while still occasionally
// moving a folder across workers' namespaces to exercise the LCA
// shield.
//
// It never asserts a specific interleaving, only that every goroutine
// returns, i.e. the workload does not deadlock. Use `run --render` on
// a deterministic script to check specific outcomes.
var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Hammer the tree with concurrent create/remove/move/list",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := tree.New(tree.WithLogger(newLogger()))
		defer t.Free()

		for w := 0; w < stressWorkers; w++ {
			if err := t.Create(fmt.Sprintf("/worker%d/", w)); err != nil {
				return err
			}
		}

		g, _ := errgroup.WithContext(context.Background())
		for w := 0; w < stressWorkers; w++ {
			w := w
			g.Go(func() error {
				return stressWorker(t, w, stressWorkers, stressOps)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "stress completed without deadlock")
		out, err := renderTree(t)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func stressWorker(t *tree.Tree, id, workers, ops int) error {
	rnd := rand.New(rand.NewSource(int64(id) + 1))
	base := fmt.Sprintf("/worker%d/", id)

	for i := 0; i < ops; i++ {
		name := fmt.Sprintf("item%d/", i)
		path := base + name

		switch rnd.Intn(4) {
		case 0:
			// Errors are expected under contention (already-exists,
			// not-found after a concurrent remove); only a panic or a
			// hang would indicate a broken protocol.
			_ = t.Create(path)
		case 1:
			_ = t.Remove(path)
		case 2:
			_, _ = t.List(base)
		case 3:
			other := rnd.Intn(workers)
			if other == id {
				continue
			}
			target := fmt.Sprintf("/worker%d/%s", other, name)
			_ = t.Move(path, target)
		}
	}
	return nil
}

func init() {
	stressCmd.Flags().IntVar(&stressWorkers, "workers", 8, "number of concurrent workers")
	stressCmd.Flags().IntVar(&stressOps, "ops", 200, "operations per worker")
	rootCmd.AddCommand(stressCmd)
}
