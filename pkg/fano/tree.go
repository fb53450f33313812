package fano

// Node is a node of the binary code tree. Following Zero and One from the
// root spells out the codes; leaves carry the coded symbols.
type Node struct {
	Code        string // path from the root
	Probability float64
	Symbol      *Coded // set on leaves
	Zero, One   *Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Zero == nil && n.One == nil
}

// Tree builds the code tree of codes. Inner node probabilities are the
// sums of the leaves below them.
func Tree(codes []Coded) *Node {
	root := &Node{}
	for i := range codes {
		c := &codes[i]
		root.Probability += c.Probability

		n := root
		for j := 0; j < len(c.Code); j++ {
			next := &n.Zero
			if c.Code[j] == '1' {
				next = &n.One
			}
			if *next == nil {
				*next = &Node{Code: c.Code[:j+1]}
			}
			n = *next
			n.Probability += c.Probability
		}
		n.Symbol = c
	}
	return root
}

// Walk visits n and its descendants in pre-order, 1 before 0.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	n.One.Walk(fn)
	n.Zero.Walk(fn)
}

// Depth returns the length of the longest code below n.
func (n *Node) Depth() int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	return 1 + max(n.Zero.Depth(), n.One.Depth())
}
