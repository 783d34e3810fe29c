// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

// SelectOptions is a set of candidate byte strings, compiled into a trie so
// that BufferedSource.Select can find which (if any) is a prefix of the
// upcoming bytes in a single pass, pulling only as many bytes as needed to
// decide (spec §4.5).
//
// Named SelectOptions, not Options, to avoid colliding with the functional
// configuration Option/Options pattern used elsewhere for constructors.
type SelectOptions struct {
	list []ByteString
	root *optionNode
}

type optionNode struct {
	children [256]*optionNode
	index    int // -1 until some option ends exactly here
}

func newOptionNode() *optionNode {
	return &optionNode{index: -1}
}

// NewSelectOptions compiles options into a trie. If one option is a byte-
// for-byte duplicate of another, the earlier one (lower index) wins.
func NewSelectOptions(options ...ByteString) *SelectOptions {
	root := newOptionNode()
	for i, opt := range options {
		n := root
		sz := opt.Size()
		for j := 0; j < sz; j++ {
			c := opt.At(j)
			if n.children[c] == nil {
				n.children[c] = newOptionNode()
			}
			n = n.children[c]
		}
		if n.index == -1 {
			n.index = i
		}
	}
	return &SelectOptions{list: options, root: root}
}

// Size returns the number of candidate options.
func (o *SelectOptions) Size() int { return len(o.list) }

// At returns the i'th candidate option.
func (o *SelectOptions) At(i int) ByteString { return o.list[i] }

// match walks the trie using peek(i) to examine the i'th upcoming byte
// (ok is false once the caller has no more bytes available), returning the
// index of the longest candidate matched, the number of bytes it consumes,
// and whether anything matched at all.
func (o *SelectOptions) match(peek func(i int) (b byte, ok bool)) (index int, matchedLen int, found bool) {
	n := o.root
	best, bestLen := -1, 0
	for i := 0; ; i++ {
		if n.index >= 0 {
			best, bestLen = n.index, i
		}
		c, ok := peek(i)
		if !ok {
			break
		}
		next := n.children[c]
		if next == nil {
			break
		}
		n = next
	}
	if best < 0 {
		return -1, 0, false
	}
	return best, bestLen, true
}
