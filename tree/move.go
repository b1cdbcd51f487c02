package tree

import (
	"github.com/foldertree/foldertree/log"
	"github.com/foldertree/foldertree/pathutil"
)

// Move atomically relocates the subtree at source to target.
//
// The algorithm is two-phase: a reader walk from the root down to the
// lowest common ancestor of source's and target's parents, where a
// single writer lock (the "LCA shield") excludes any other operation
// from entering either parent chain for the rest of the move; then two
// independent hand-over-hand descents from that shield down to
// source's parent and target's parent, each acquired as writer.
func (t *Tree) Move(source, target string) error {
	cookie := t.logCall("move", source, log.M{"target": target})
	err := t.move(source, target)
	t.logReturn("move", cookie, err)
	return err
}

func (t *Tree) move(source, target string) error {
	if !pathutil.IsValid(source) || !pathutil.IsValid(target) {
		return newErr("move", InvalidArgument, source)
	}
	if pathutil.IsRoot(source) {
		return newErr("move", Busy, source)
	}
	if pathutil.IsRoot(target) {
		return newErr("move", AlreadyExists, target)
	}
	// Cheap pre-filter only: a genuine guarantee against races still
	// requires the LCA writer shield below, since paths are strings
	// and the tree they describe can change concurrently.
	if pathutil.HasPrefix(source, target) {
		return newErr("move", IllegalMove, target)
	}

	sourceParentPath, sourceLast := pathutil.ParentOf(source)
	targetParentPath, targetLast := pathutil.ParentOf(target)
	sourceParentComps := pathutil.Split(sourceParentPath)
	targetParentComps := pathutil.Split(targetParentPath)
	lcaComps := commonPrefix(sourceParentComps, targetParentComps)

	lca, kind := walkPath(t.root, lcaComps, roleWriter)
	if kind != 0 {
		return newErr("move", kind, source)
	}

	sourceParent, kind := descendUnderShield(lca, sourceParentComps[len(lcaComps):])
	if kind != 0 {
		lca.mon.unlock(roleWriter)
		return newErr("move", kind, source)
	}

	targetParent, kind := descendUnderShield(lca, targetParentComps[len(lcaComps):])
	if kind != 0 {
		unlockIfDistinct(sourceParent, lca)
		lca.mon.unlock(roleWriter)
		return newErr("move", kind, target)
	}

	defer lca.mon.unlock(roleWriter)
	defer unlockIfDistinct(sourceParent, lca)
	defer unlockIfDistinct(targetParent, lca)

	moved := sourceParent.children.get(sourceLast)
	if moved == nil {
		return newErr("move", NotFound, source)
	}
	if !targetParent.children.insert(targetLast, moved) {
		return newErr("move", AlreadyExists, target)
	}
	sourceParent.children.remove(sourceLast)
	return nil
}

// commonPrefix returns the longest shared leading run of a and b,
// compared component by component. Never as raw path-string prefixing,
// which would misidentify "/ab/" as sharing structure with "/abc/".
func commonPrefix(a, b []string) []string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// unlockIfDistinct releases n's writer lock unless n is the shield
// itself, the edge case where a source or target parent coincides
// with the LCA and must only be unlocked once.
func unlockIfDistinct(n, shield *node) {
	if n != shield {
		n.mon.unlock(roleWriter)
	}
}
