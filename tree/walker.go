package tree

// walkPath is the generic hand-over-hand traversal: it acquires root
// in rootRole, then for each component in comps looks it up under the
// currently held node, acquires the child in its assigned role (reader
// for every interior step, terminalRole for the last), and only then
// releases the parent.
//
// If comps is empty the walk never leaves the root, which is acquired
// directly in terminalRole. This is how list("/") and a create/remove
// whose target's parent is the root are handled without a special
// case in the caller.
//
// On success it returns the terminal node, still held in terminalRole;
// the caller owns releasing it. On a missing component it unwinds the
// lock it was holding and returns NotFound; every lock acquired before
// the miss has already been released by the hand-over-hand process
// itself.
func walkPath(root *node, comps []string, terminalRole role) (*node, Kind) {
	rootRole := roleReader
	if len(comps) == 0 {
		rootRole = terminalRole
	}
	root.mon.lock(rootRole)

	cur, curRole := root, rootRole
	for i, c := range comps {
		child := cur.children.get(c)
		if child == nil {
			cur.mon.unlock(curRole)
			return nil, NotFound
		}
		nextRole := roleReader
		if i == len(comps)-1 {
			nextRole = terminalRole
		}
		child.mon.lock(nextRole)
		cur.mon.unlock(curRole)
		cur, curRole = child, nextRole
	}
	return cur, 0
}

// descendUnderShield continues a hand-over-hand walk from a node that
// must remain locked throughout (the move operation's LCA barrier).
// Unlike walkPath, shield itself is never unlocked here: only the
// first acquired child's predecessor-release is skipped, everything
// past it follows the ordinary hand-over-hand rule.
//
// If comps is empty, shield is itself the requested node (the source
// or target parent coincides with the LCA) and is returned unchanged;
// the caller must not unlock it twice.
func descendUnderShield(shield *node, comps []string) (*node, Kind) {
	if len(comps) == 0 {
		return shield, 0
	}
	cur, curRole := shield, roleWriter
	for i, c := range comps {
		child := cur.children.get(c)
		if child == nil {
			if cur != shield {
				cur.mon.unlock(curRole)
			}
			return nil, NotFound
		}
		nextRole := roleReader
		if i == len(comps)-1 {
			nextRole = roleWriter
		}
		child.mon.lock(nextRole)
		if cur != shield {
			cur.mon.unlock(curRole)
		}
		cur, curRole = child, nextRole
	}
	return cur, 0
}
