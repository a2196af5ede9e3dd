package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})
		}
	}

	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// When returns an Attr only when condition is true. The zero Attr it returns
// otherwise is ignored by element factories.
func When(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Range maps items to nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Find returns the first node in depth-first order for which match returns
// true, or nil. Component nodes are not expanded.
func Find(root *VNode, match func(*VNode) bool) *VNode {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	for _, child := range root.Children {
		if found := Find(child, match); found != nil {
			return found
		}
	}
	return nil
}

// FindByTag returns the first element with the given tag.
func FindByTag(root *VNode, tag string) *VNode {
	return Find(root, func(n *VNode) bool {
		return n.Kind == KindElement && n.Tag == tag
	})
}

// FindByData returns the first element whose data-key attribute equals value.
func FindByData(root *VNode, key, value string) *VNode {
	return Find(root, func(n *VNode) bool {
		v, ok := n.Attr("data-" + key)
		return ok && v == value
	})
}
