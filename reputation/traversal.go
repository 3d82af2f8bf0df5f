package reputation

import (
	"fmt"
	"io"
	"iter"
)

// Filter returns the entries accepted by pred in ascending domain order. A nil pred accepts everything.
// The sequence is lazy and can be ranged over any number of times; each pass restarts from the smallest domain.
// Scores may be updated while ranging, but inserting during a pass gives undefined order.
func (t *Index) Filter(pred func(Entry) bool) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		var stack []uint32
		cur := t.root
		for cur != nilIndex || len(stack) > 0 {
			for cur != nilIndex {
				stack = append(stack, cur)
				cur = t.nodes[cur].left
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			e := t.entry(cur)
			if pred == nil || pred(e) {
				if !yield(e) {
					return
				}
			}
			cur = t.nodes[cur].right
		}
	}
}

// All returns every entry in ascending domain order.
func (t *Index) All() iter.Seq[Entry] {
	return t.Filter(nil)
}

// Below returns the entries whose score is strictly below threshold, in domain order.
func (t *Index) Below(threshold int) iter.Seq[Entry] {
	return t.Filter(func(e Entry) bool {
		return e.ReputationScore < threshold
	})
}

// Height returns the number of nodes on the longest path from the root to a leaf. An empty index has height 0.
func (t *Index) Height() int {
	type frame struct {
		i     uint32
		depth int
	}

	height := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.i == nilIndex {
			continue
		}
		if f.depth > height {
			height = f.depth
		}
		n := &t.nodes[f.i]
		stack = append(stack, frame{n.left, f.depth + 1}, frame{n.right, f.depth + 1})
	}
	return height
}

// Dump writes an indented picture of the tree, one node per line, left subtrees first.
func (t *Index) Dump(w io.Writer) (err error) {
	type frame struct {
		i      uint32
		prefix string
		isLeft bool
	}

	if t.root == nilIndex {
		_, err = fmt.Fprintln(w, "(empty)")
		return
	}

	stack := []frame{{t.root, "", true}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[f.i]

		branch, indent := "`-- ", "    "
		if f.isLeft {
			branch, indent = "|-- ", "|   "
		}
		if _, err = fmt.Fprintf(w, "%s%s[%s] %s: %d\n", f.prefix, branch, n.color, n.domain, n.score); err != nil {
			return
		}

		// Pushed right first so the left subtree is printed first.
		if n.right != nilIndex {
			stack = append(stack, frame{n.right, f.prefix + indent, false})
		}
		if n.left != nilIndex {
			stack = append(stack, frame{n.left, f.prefix + indent, true})
		}
	}
	return
}
