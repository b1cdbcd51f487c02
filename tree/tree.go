// Package tree implements a concurrent in-memory hierarchical
// namespace: a tree of named folders rooted at "/" supporting
// create, list, remove, and atomic subtree move, synchronized by a
// fair per-folder reader/writer monitor with hand-over-hand
// traversal (see monitor.go and walker.go).
package tree

import (
	"github.com/foldertree/foldertree/log"
	"github.com/foldertree/foldertree/pathutil"
)

// Tree is a handle to one namespace rooted at "/". The zero value is
// not usable; construct with New.
type Tree struct {
	root *node
	log  log.Log
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger attaches a topic-gated logger (see the log package) to
// every operation the Tree performs. Without this option a Tree logs
// nothing, a zero-cost default.
func WithLogger(l log.Log) Option {
	return func(t *Tree) { t.log = l }
}

// New creates a tree with a single, empty root folder "/".
func New(opts ...Option) *Tree {
	t := &Tree{root: newNode(), log: log.NoLog{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Free releases every folder in the tree. The caller guarantees no
// other goroutine still holds a reference to t: there is no locking
// inside the recursive destructor itself.
func (t *Tree) Free() {
	t.root.destroySubtree()
}

func (t *Tree) logCall(op, path string, extra log.M) string {
	if extra == nil {
		extra = log.M{}
	}
	extra["path"] = path
	return t.log.Call(op, extra)
}

func (t *Tree) logReturn(op, cookie string, err error) {
	t.log.Return(op, cookie, log.M{"err": err})
	if err != nil {
		t.log.Logf(log.TopicError, "%s %v", op, err)
	}
}

// Create makes a new, empty folder at path.
func (t *Tree) Create(path string) error {
	cookie := t.logCall("create", path, nil)
	err := t.create(path)
	t.logReturn("create", cookie, err)
	return err
}

func (t *Tree) create(path string) error {
	if !pathutil.IsValid(path) {
		return newErr("create", InvalidArgument, path)
	}
	if pathutil.IsRoot(path) {
		return newErr("create", AlreadyExists, path)
	}

	parentPath, last := pathutil.ParentOf(path)
	parent, kind := walkPath(t.root, pathutil.Split(parentPath), roleWriter)
	if kind != 0 {
		return newErr("create", kind, path)
	}
	defer parent.mon.unlock(roleWriter)

	child := newNode()
	if !parent.children.insert(last, child) {
		child.release()
		return newErr("create", AlreadyExists, path)
	}
	return nil
}

// List returns the comma-separated immediate child names of path,
// observed consistently as of the moment the terminal reader lock is
// held. It returns (_, tree.ErrNotFound) if path does not
// resolve.
func (t *Tree) List(path string) (string, error) {
	cookie := t.logCall("list", path, nil)
	result, err := t.list(path)
	t.logReturn("list", cookie, err)
	return result, err
}

func (t *Tree) list(path string) (string, error) {
	if !pathutil.IsValid(path) {
		return "", newErr("list", InvalidArgument, path)
	}
	target, kind := walkPath(t.root, pathutil.Split(path), roleReader)
	if kind != 0 {
		return "", newErr("list", kind, path)
	}
	defer target.mon.unlock(roleReader)
	return target.children.stringify(), nil
}

// Remove deletes the (empty) folder at path.
func (t *Tree) Remove(path string) error {
	cookie := t.logCall("remove", path, nil)
	err := t.remove(path)
	t.logReturn("remove", cookie, err)
	return err
}

func (t *Tree) remove(path string) error {
	if !pathutil.IsValid(path) {
		return newErr("remove", InvalidArgument, path)
	}
	if pathutil.IsRoot(path) {
		return newErr("remove", Busy, path)
	}

	parentPath, last := pathutil.ParentOf(path)
	parent, kind := walkPath(t.root, pathutil.Split(parentPath), roleWriter)
	if kind != 0 {
		return newErr("remove", kind, path)
	}
	defer parent.mon.unlock(roleWriter)

	target := parent.children.get(last)
	if target == nil {
		return newErr("remove", NotFound, path)
	}
	// The parent's writer shield already guarantees no other operation
	// has entered target since the parent lock was taken: target needs
	// no separate lock of its own here, and reading its child-count is
	// safe under the parent's writer role.
	if target.children.size() != 0 {
		return newErr("remove", NotEmpty, path)
	}
	parent.children.remove(last)
	target.release()
	return nil
}
