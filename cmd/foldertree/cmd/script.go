package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/foldertree/foldertree/tree"
)

var renderAfter bool

// runCmd replays a line-oriented script of operations against one
// tree. Each line is "op args...":
//
//	create /a/
//	create /a/b/
//	list /a/
//	move /a/b/ /c/b/
//	remove /a/
//
// Blank lines and lines starting with "#" are ignored. This is the
// mechanism an end-to-end session is replayed through from the command
// line.
var runCmd = &cobra.Command{
	Use:   "run <script-file>",
	Short: "Replay a script of create/list/remove/move operations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "open script")
		}
		defer f.Close()

		t := tree.New(tree.WithLogger(newLogger()))
		defer t.Free()

		scanner := bufio.NewScanner(f)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if err := runLine(cmd, t, line); err != nil {
				return errors.Wrapf(err, "line %d: %q", lineNo, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return errors.Wrap(err, "read script")
		}

		if renderAfter {
			out, err := renderTree(t)
			if err != nil {
				return errors.Wrap(err, "render tree")
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

func runLine(cmd *cobra.Command, t *tree.Tree, line string) error {
	fields := strings.Fields(line)
	op := fields[0]
	args := fields[1:]
	out := cmd.OutOrStdout()

	switch op {
	case "create":
		if len(args) != 1 {
			return fmt.Errorf("create takes exactly one path")
		}
		err := t.Create(args[0])
		fmt.Fprintf(out, "create %s -> %s\n", args[0], okOrErr(err))
	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("remove takes exactly one path")
		}
		err := t.Remove(args[0])
		fmt.Fprintf(out, "remove %s -> %s\n", args[0], okOrErr(err))
	case "list":
		if len(args) != 1 {
			return fmt.Errorf("list takes exactly one path")
		}
		result, err := t.List(args[0])
		if err != nil {
			fmt.Fprintf(out, "list %s -> %s\n", args[0], okOrErr(err))
		} else {
			fmt.Fprintf(out, "list %s -> %q\n", args[0], result)
		}
	case "move":
		if len(args) != 2 {
			return fmt.Errorf("move takes exactly two paths")
		}
		err := t.Move(args[0], args[1])
		fmt.Fprintf(out, "move %s %s -> %s\n", args[0], args[1], okOrErr(err))
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	return nil
}

func okOrErr(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

func init() {
	runCmd.Flags().BoolVar(&renderAfter, "render", false, "render the final tree as a table")
	rootCmd.AddCommand(runCmd)
}
