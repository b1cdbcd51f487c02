package tree

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestMoveAcrossSiblings(t *testing.T) {
	tr := New()
	defer tr.Free()

	mustCreate(t, tr, "/a/")
	mustCreate(t, tr, "/b/")

	if err := tr.Move("/a/", "/b/a/"); err != nil {
		t.Fatalf("Move(/a/, /b/a/) = %v, want nil", err)
	}
	if got, err := tr.List("/"); err != nil || got != "b" {
		t.Fatalf(`List("/") = (%q, %v), want ("b", nil)`, got, err)
	}
	if got, err := tr.List("/b/"); err != nil || got != "a" {
		t.Fatalf(`List("/b/") = (%q, %v), want ("a", nil)`, got, err)
	}
}

// TestMoveRoundTrip checks that move(s, t) then move(t, s) restores
// the tree exactly.
func TestMoveRoundTrip(t *testing.T) {
	tr := New()
	defer tr.Free()

	mustCreate(t, tr, "/a/")
	mustCreate(t, tr, "/a/x/")
	mustCreate(t, tr, "/a/x/y/")
	mustCreate(t, tr, "/b/")

	before := snapshot(t, tr, "/")

	if err := tr.Move("/a/", "/b/a/"); err != nil {
		t.Fatalf("Move(/a/, /b/a/) = %v, want nil", err)
	}
	if err := tr.Move("/b/a/", "/a/"); err != nil {
		t.Fatalf("Move(/b/a/, /a/) = %v, want nil", err)
	}

	after := snapshot(t, tr, "/")
	if diff := pretty.Compare(before, after); diff != "" {
		t.Fatalf("tree not restored after round-trip move, diff (-before +after):\n%s", diff)
	}
}

func TestMoveRenameUnderSameParent(t *testing.T) {
	tr := New()
	defer tr.Free()

	mustCreate(t, tr, "/a/")
	mustCreate(t, tr, "/a/b/")

	// source parent == target parent == LCA edge case.
	if err := tr.Move("/a/b/", "/a/c/"); err != nil {
		t.Fatalf("Move(/a/b/, /a/c/) = %v, want nil", err)
	}
	if got, _ := tr.List("/a/"); got != "c" {
		t.Fatalf(`List("/a/") = %q, want "c"`, got)
	}
}

func TestMoveTargetParentIsLCA(t *testing.T) {
	tr := New()
	defer tr.Free()

	mustCreate(t, tr, "/a/")
	mustCreate(t, tr, "/a/b/")
	mustCreate(t, tr, "/a/b/c/")

	// target's parent is "/a/" itself, which is also the LCA: only
	// the source-side descent is non-empty.
	if err := tr.Move("/a/b/c/", "/a/c/"); err != nil {
		t.Fatalf("Move(/a/b/c/, /a/c/) = %v, want nil", err)
	}
	if got, _ := tr.List("/a/"); got != "b,c" {
		t.Fatalf(`List("/a/") = %q, want "b,c"`, got)
	}
}

func TestMoveTargetExistsFails(t *testing.T) {
	tr := New()
	defer tr.Free()

	mustCreate(t, tr, "/a/")
	mustCreate(t, tr, "/b/")
	mustCreate(t, tr, "/b/a/")

	if err := tr.Move("/a/", "/b/a/"); err == nil || kindOf(t, err) != AlreadyExists {
		t.Fatalf("Move onto existing name should be already-exists, got %v", err)
	}
}

func TestMoveSourceMissingFails(t *testing.T) {
	tr := New()
	defer tr.Free()

	mustCreate(t, tr, "/b/")
	if err := tr.Move("/a/", "/b/a/"); err == nil || kindOf(t, err) != NotFound {
		t.Fatalf("Move of missing source should be not-found, got %v", err)
	}
}

func mustCreate(t *testing.T, tr *Tree, path string) {
	t.Helper()
	if err := tr.Create(path); err != nil {
		t.Fatalf("Create(%q) = %v, want nil", path, err)
	}
}

// snapshot walks the tree breadth-first through the public API and
// returns a deterministic map of path -> sorted children, used to
// compare tree shape before and after a sequence of moves.
func snapshot(t *testing.T, tr *Tree, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	queue := []string{root}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		children, err := tr.List(p)
		if err != nil {
			t.Fatalf("List(%q) = %v, want nil", p, err)
		}
		out[p] = children
		if children == "" {
			continue
		}
		for _, name := range splitNames(children) {
			queue = append(queue, p+name+"/")
		}
	}
	return out
}

func splitNames(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}

