package reputation

// insertFixup restores the red-black properties after z was attached as a red leaf.
func (t *Index) insertFixup(z uint32) {
	nn := t.nodes
	for nn[nn[z].parent].color == Red {
		p := nn[z].parent
		g := nn[p].parent

		if p == nn[g].left {
			uncle := nn[g].right
			if nn[uncle].color == Red {
				// Uncle is red: push the blackness down from the grandparent and continue above it.
				nn[p].color = Black
				nn[uncle].color = Black
				nn[g].color = Red
				z = g
				continue
			}
			if z == nn[p].right {
				// Inner grandchild: rotate into the outer position.
				z = p
				t.rotateLeft(z)
				p = nn[z].parent
			}
			nn[p].color = Black
			nn[g].color = Red
			t.rotateRight(g)
		} else {
			uncle := nn[g].left
			if nn[uncle].color == Red {
				nn[p].color = Black
				nn[uncle].color = Black
				nn[g].color = Red
				z = g
				continue
			}
			if z == nn[p].left {
				z = p
				t.rotateRight(z)
				p = nn[z].parent
			}
			nn[p].color = Black
			nn[g].color = Red
			t.rotateLeft(g)
		}
	}
	nn[t.root].color = Black
}

// rotateLeft makes x's right child the root of x's subtree.
//
//	  x              y
//	 / \            / \
//	a   y    =>    x   c
//	   / \        / \
//	  b   c      a   b
func (t *Index) rotateLeft(x uint32) {
	nn := t.nodes
	y := nn[x].right
	nn[x].right = nn[y].left
	if nn[y].left != nilIndex {
		nn[nn[y].left].parent = x
	}
	nn[y].parent = nn[x].parent
	switch xp := nn[x].parent; {
	case xp == nilIndex:
		t.root = y
	case x == nn[xp].left:
		nn[xp].left = y
	default:
		nn[xp].right = y
	}
	nn[y].left = x
	nn[x].parent = y
}

// rotateRight is the mirror image of rotateLeft.
func (t *Index) rotateRight(y uint32) {
	nn := t.nodes
	x := nn[y].left
	nn[y].left = nn[x].right
	if nn[x].right != nilIndex {
		nn[nn[x].right].parent = y
	}
	nn[x].parent = nn[y].parent
	switch yp := nn[y].parent; {
	case yp == nilIndex:
		t.root = x
	case y == nn[yp].right:
		nn[yp].right = x
	default:
		nn[yp].left = x
	}
	nn[x].right = y
	nn[y].parent = x
}
