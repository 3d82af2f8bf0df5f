package reputation

import "fmt"

// Property identifies one of the red-black tree properties checked by VerifyInvariants.
type Property int

const (
	// PropertyColor: every node is red or black, the sentinel and the root are black.
	PropertyColor Property = iota + 1
	// PropertyRedRed: no red node has a red child.
	PropertyRedRed
	// PropertyBlackHeight: every path from a node down to the sentinel crosses the same number of black nodes.
	PropertyBlackHeight
	// PropertyOrder: in-order traversal yields strictly ascending domains.
	PropertyOrder
	// PropertyLinks: every child points back at its parent.
	PropertyLinks
)

var propertyNames = map[Property]string{
	PropertyColor:       "color",
	PropertyRedRed:      "red-red",
	PropertyBlackHeight: "black-height",
	PropertyOrder:       "order",
	PropertyLinks:       "parent-links",
}

func (p Property) String() string {
	if s, ok := propertyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("property(%d)", int(p))
}

// Violation describes a broken tree property. Any violation means the index has a bug.
type Violation struct {
	Property Property
	Domain   string
	Detail   string
}

func (v Violation) Error() string {
	if v.Domain == "" {
		return fmt.Sprintf("%v violation: %s", v.Property, v.Detail)
	}
	return fmt.Sprintf("%v violation at %q: %s", v.Property, v.Domain, v.Detail)
}

// VerifyInvariants walks the whole tree and reports every broken property.
// It is a diagnostic for tests and tooling and is never called by the mutating operations.
func (t *Index) VerifyInvariants() (ok bool, violations []Violation) {
	report := func(p Property, i uint32, format string, args ...interface{}) {
		v := Violation{Property: p, Detail: fmt.Sprintf(format, args...)}
		if i != nilIndex {
			v.Domain = t.nodes[i].domain
		}
		violations = append(violations, v)
	}

	if t.nodes[nilIndex].color != Black {
		report(PropertyColor, nilIndex, "sentinel is %v", t.nodes[nilIndex].color)
	}
	if t.root != nilIndex {
		if t.nodes[t.root].color != Black {
			report(PropertyColor, t.root, "root is red")
		}
		if t.nodes[t.root].parent != nilIndex {
			report(PropertyLinks, t.root, "root has a parent")
		}
	}

	// Post-order walk computing black heights bottom up; the sentinel counts as one black node.
	blackHeight := make([]int, len(t.nodes))
	blackHeight[nilIndex] = 1

	type frame struct {
		i       uint32
		visited bool
	}
	stack := []frame{{t.root, false}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.i == nilIndex {
			continue
		}
		n := &t.nodes[f.i]

		if !f.visited {
			stack = append(stack, frame{f.i, true}, frame{n.right, false}, frame{n.left, false})
			continue
		}

		if n.color != Red && n.color != Black {
			report(PropertyColor, f.i, "unknown color %d", n.color)
		}
		for _, c := range [2]uint32{n.left, n.right} {
			if c == nilIndex {
				continue
			}
			if t.nodes[c].parent != f.i {
				report(PropertyLinks, c, "child of %q points at another parent", n.domain)
			}
			if n.color == Red && t.nodes[c].color == Red {
				report(PropertyRedRed, f.i, "red node has red child %q", t.nodes[c].domain)
			}
		}

		lh, rh := blackHeight[n.left], blackHeight[n.right]
		if lh != rh {
			report(PropertyBlackHeight, f.i, "left black-height %d, right black-height %d", lh, rh)
		}
		if lh < rh {
			lh = rh
		}
		if n.color == Black {
			lh++
		}
		blackHeight[f.i] = lh
	}

	var prev string
	first := true
	for e := range t.All() {
		if !first && e.Domain <= prev {
			violations = append(violations, Violation{
				Property: PropertyOrder,
				Domain:   e.Domain,
				Detail:   fmt.Sprintf("follows %q in traversal", prev),
			})
		}
		prev, first = e.Domain, false
	}

	ok = len(violations) == 0
	return
}
