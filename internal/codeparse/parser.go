package codeparse

import "strings"

// node is a recovered tag or text run. The tree is built with a stack of open
// nodes: a token's parent is the innermost tag still open when it appears.
type node struct {
	tag      string // "#text" for bare text runs
	attrs    []attr
	text     string
	children []*node
}

func (n *node) attr(name string) string {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value
		}
	}
	return ""
}

func (n *node) isText() bool { return n.tag == "#text" }

// innerText concatenates the node's direct text runs.
func (n *node) innerText() string {
	var parts []string
	for _, c := range n.children {
		if c.isText() {
			parts = append(parts, strings.TrimSpace(c.text))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (n *node) hasTagChildren() bool {
	for _, c := range n.children {
		if !c.isText() {
			return true
		}
	}
	return false
}

// voidTags never take children even without a self-closing slash.
var voidTags = map[string]bool{
	"img":   true,
	"br":    true,
	"hr":    true,
	"input": true,
}

// parseNodes assembles tokens into a forest. Mismatched close tags are
// ignored; close tags that skip levels pop everything above their match.
// Text outside any tag (imports, the component function wrapper) is dropped.
func parseNodes(toks []token) []*node {
	root := &node{tag: "#root"}
	stack := []*node{root}

	for _, t := range toks {
		top := stack[len(stack)-1]
		switch t.kind {
		case tokText:
			if top == root {
				continue
			}
			if strings.TrimSpace(t.text) == "" {
				continue
			}
			top.children = append(top.children, &node{tag: "#text", text: t.text})

		case tokOpen:
			n := &node{tag: strings.ToLower(t.name), attrs: t.attrs}
			top.children = append(top.children, n)
			if !t.selfClosing && !voidTags[n.tag] {
				stack = append(stack, n)
			}

		case tokClose:
			name := strings.ToLower(t.name)
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].tag == name {
					stack = stack[:i]
					break
				}
			}
		}
	}

	return root.children
}
