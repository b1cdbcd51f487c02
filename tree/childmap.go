package tree

import (
	"sort"
	"strings"
	"sync"
)

// childMap is the per-folder associative container: a name -> *node
// mapping with no ordering guarantees of its own. It is pooled so that
// child maps are recycled across node lifetimes, since folders are
// created and destroyed far more often than the pool itself needs to
// grow.
type childMap struct {
	m map[string]*node
}

var childMapPool = sync.Pool{
	New: func() any {
		return &childMap{m: make(map[string]*node)}
	},
}

func newChildMap() *childMap {
	return childMapPool.Get().(*childMap)
}

func (c *childMap) release() {
	for k := range c.m {
		delete(c.m, k)
	}
	childMapPool.Put(c)
}

// insert adds child under name, returning false if name is already
// taken.
func (c *childMap) insert(name string, child *node) bool {
	if _, exists := c.m[name]; exists {
		return false
	}
	c.m[name] = child
	return true
}

// get returns the child named name, or nil if absent.
func (c *childMap) get(name string) *node {
	return c.m[name]
}

// remove deletes name unconditionally.
func (c *childMap) remove(name string) {
	delete(c.m, name)
}

func (c *childMap) size() int {
	return len(c.m)
}

// names returns the child names in sorted order. The design permits
// any order for list(); sorting here only makes the CLI and tests
// deterministic, it carries no synchronization meaning.
func (c *childMap) names() []string {
	out := make([]string, 0, len(c.m))
	for k := range c.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// stringify is the comma-joined listing helper list() uses.
func (c *childMap) stringify() string {
	return strings.Join(c.names(), ",")
}
