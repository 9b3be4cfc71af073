// Package graph renders menu trees as Mermaid flowcharts for docs and the
// CLI's graph command.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkarlsen/switchboard/pkg/menu"
)

// GenerateMermaid produces Mermaid flowchart syntax for a tree.
// Shapes carry semantics:
//   - menus: [rectangles], annotated with mode and timeout
//   - leaves: ((circles))
//   - nodes with actions: [[subroutines]]
//
// Edges are labeled with the key that selects them; extension edges use a
// dotted arrow since they are dialed, not pressed.
func GenerateMermaid(root *menu.Node) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	writeNode(&sb, root, "n0")
	return sb.String()
}

func writeNode(sb *strings.Builder, node *menu.Node, id string) {
	opener, closer := "[", "]"
	switch {
	case node.Action != nil:
		opener, closer = "[[", "]]"
	case node.IsLeaf():
		opener, closer = "((", "))"
	}

	label := node.Prompt
	if !node.IsLeaf() && node.Mode != menu.ModeSingleDigit {
		label = fmt.Sprintf("%s <br/> %s", label, node.Mode)
	}
	if !node.IsLeaf() {
		label = fmt.Sprintf("%s <br/> ⏱️ %s", label, node.Timeout)
	}
	fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", id, opener, escape(label), closer)

	for i, key := range sortedKeys(node.Children) {
		childID := fmt.Sprintf("%s_%d", id, i)
		arrow := fmt.Sprintf("-- \"%s\" -->", key)
		if len(key) > 1 {
			arrow = fmt.Sprintf("-. \"%s\" .->", key)
		}
		fmt.Fprintf(sb, "    %s %s %s\n", id, arrow, childID)
		writeNode(sb, node.Children[key], childID)
	}
}

func sortedKeys(children map[string]*menu.Node) []string {
	keys := make([]string, 0, len(children))
	for key := range children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
