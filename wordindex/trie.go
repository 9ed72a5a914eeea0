package wordindex

import "github.com/aleris/xwords/alphabet"

// trieNode is one node of a length-segregated trie. children is indexed by
// alphabet index, not by rune, so it stays a flat array even for non-ASCII
// alphabets. depthSet[δ] holds every letter observed at relative depth δ
// (i.e. absolute position len(pathToNode)+δ) among all terminal descendants
// of this node; since the trie is segregated by word length, every
// descendant shares the same total length, so the union is exact.
type trieNode struct {
	children []*trieNode
	terminal bool
	depthSet []alphabet.CharSet
}

// lengthTrie holds every word of one fixed length.
type lengthTrie struct {
	root   *trieNode
	length int
}

func newLengthTrie(length int) *lengthTrie {
	return &lengthTrie{root: &trieNode{}, length: length}
}

func (lt *lengthTrie) insert(word []rune, alpha *alphabet.Alphabet) {
	node := lt.root
	for _, r := range word {
		idx, _ := alpha.IndexOf(r)
		if node.children == nil {
			node.children = make([]*trieNode, alpha.Size())
		}
		child := node.children[idx]
		if child == nil {
			child = &trieNode{}
			node.children[idx] = child
		}
		node = child
	}
	node.terminal = true
}

// buildDepthSets fills in depthSet bottom-up for every node reachable from
// root, once every word of this trie's length has been inserted.
func (lt *lengthTrie) buildDepthSets(alpha *alphabet.Alphabet) {
	var walk func(node *trieNode, depth int)
	walk = func(node *trieNode, depth int) {
		remaining := lt.length - depth
		if remaining == 0 {
			return
		}
		node.depthSet = make([]alphabet.CharSet, remaining)
		for i := range node.depthSet {
			node.depthSet[i] = alphabet.NewCharSet(alpha.Size())
		}
		if node.children == nil {
			return
		}
		for idx, child := range node.children {
			if child == nil {
				continue
			}
			walk(child, depth+1)
			node.depthSet[0].Add(idx)
			for delta := 1; delta < remaining; delta++ {
				node.depthSet[delta].Union(child.depthSet[delta-1])
			}
		}
	}
	walk(lt.root, 0)
}

// matchesSuffix reports whether some descendant of node, reached by
// consuming suffix (wildcards branching over every child), terminates.
func matchesSuffix(node *trieNode, suffix Pattern, alpha *alphabet.Alphabet) bool {
	if len(suffix) == 0 {
		return node.terminal
	}
	if node.children == nil {
		return false
	}
	if suffix[0] == Wildcard {
		for _, child := range node.children {
			if child != nil && matchesSuffix(child, suffix[1:], alpha) {
				return true
			}
		}
		return false
	}
	idx, ok := alpha.IndexOf(suffix[0])
	if !ok {
		return false
	}
	child := node.children[idx]
	if child == nil {
		return false
	}
	return matchesSuffix(child, suffix[1:], alpha)
}
