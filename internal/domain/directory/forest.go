package directory

import (
	"iter"
	"slices"
)

// Forest is an arena of directories indexed by id. Child lists keep the order
// in which directories were handed to NewForest.
type Forest struct {
	nodes    map[string]Directory
	children map[string][]string
	roots    []string
}

// NewForest indexes dirs. dirs are expected in insertion order.
func NewForest(dirs []Directory) *Forest {
	f := &Forest{
		nodes:    make(map[string]Directory, len(dirs)),
		children: make(map[string][]string),
	}
	for _, d := range dirs {
		f.nodes[d.ID] = d
		if d.ParentID == nil {
			f.roots = append(f.roots, d.ID)
			continue
		}
		f.children[*d.ParentID] = append(f.children[*d.ParentID], d.ID)
	}
	return f
}

// Len returns the number of directories in the forest.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// Get returns the directory with the given id.
func (f *Forest) Get(id string) (Directory, bool) {
	d, ok := f.nodes[id]
	return d, ok
}

// Roots returns the directories without a parent.
func (f *Forest) Roots() []Directory {
	return f.collect(f.roots)
}

// Children returns the direct children of id.
func (f *Forest) Children(id string) []Directory {
	return f.collect(f.children[id])
}

func (f *Forest) collect(ids []string) []Directory {
	out := make([]Directory, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.nodes[id])
	}
	return out
}

// Descendants yields every directory below id, depth-first, children in
// insertion order. id itself is never yielded. Each range restarts the walk.
func (f *Forest) Descendants(id string) iter.Seq[Directory] {
	return func(yield func(Directory) bool) {
		visited := map[string]bool{id: true}
		stack := reversed(f.children[id])
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[current] {
				continue
			}
			visited[current] = true
			if !yield(f.nodes[current]) {
				return
			}
			stack = append(stack, reversed(f.children[current])...)
		}
	}
}

// Ancestors yields the parent chain of id from the root down to the direct parent.
func (f *Forest) Ancestors(id string) iter.Seq[Directory] {
	return func(yield func(Directory) bool) {
		chain := f.parentChain(id)
		for i := len(chain) - 1; i >= 0; i-- {
			if !yield(chain[i]) {
				return
			}
		}
	}
}

// parentChain walks parent pointers upward, nearest parent first.
func (f *Forest) parentChain(id string) []Directory {
	var chain []Directory
	visited := map[string]bool{id: true}
	node, ok := f.nodes[id]
	for ok && node.ParentID != nil && !visited[*node.ParentID] {
		visited[*node.ParentID] = true
		node, ok = f.nodes[*node.ParentID]
		if ok {
			chain = append(chain, node)
		}
	}
	return chain
}

// IsDescendant reports whether candidate lies in the subtree below ancestor.
func (f *Forest) IsDescendant(candidate, ancestor string) bool {
	for _, d := range f.parentChain(candidate) {
		if d.ID == ancestor {
			return true
		}
	}
	return false
}

// DeletionOrder returns id and its descendants with every directory placed
// before its parent, so rows can be removed without orphaning children.
func (f *Forest) DeletionOrder(id string) []Directory {
	root, ok := f.nodes[id]
	if !ok {
		return nil
	}
	order := append([]Directory{root}, slices.Collect(f.Descendants(id))...)
	slices.Reverse(order)
	return order
}

func reversed(ids []string) []string {
	out := slices.Clone(ids)
	slices.Reverse(out)
	return out
}
