package cmd

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/foldertree/foldertree/tree"
)

// renderTree walks t breadth-first through its own public List
// operation and renders every folder as a row of a table, the same
// way cwalk's output.Formatter turns a directory walk into a table.
func renderTree(t *tree.Tree) (string, error) {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Path", "Children"})

	queue := []string{"/"}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		children, err := t.List(p)
		if err != nil {
			return "", err
		}
		tw.AppendRow(table.Row{p, children})
		if children == "" {
			continue
		}
		for _, name := range strings.Split(children, ",") {
			queue = append(queue, p+name+"/")
		}
	}
	return tw.Render(), nil
}
