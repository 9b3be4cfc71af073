package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/registry"
)

// DescribeMarkdown renders a phone system as markdown: its metadata and the
// caller-facing dialing card, menu by menu.
func DescribeMarkdown(info registry.Info, root *menu.Node) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", info.Name)
	if info.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", info.Description)
	}
	fmt.Fprintf(&sb, "- ID: `%s`\n", info.ID)
	if info.Version != "" {
		fmt.Fprintf(&sb, "- Version: `%s`\n", info.Version)
	}
	sb.WriteString("\n## Dialing card\n\n")
	describeNode(&sb, root, "")
	return sb.String()
}

func describeNode(sb *strings.Builder, node *menu.Node, indent string) {
	if node.IsLeaf() {
		return
	}

	fmt.Fprintf(sb, "%s- **%s**", indent, node.Prompt)
	switch node.Mode {
	case menu.ModeExtension:
		fmt.Fprintf(sb, " (dial an extension, submit with `%c`)", node.ExtensionTerminator)
	case menu.ModeHybrid:
		fmt.Fprintf(sb, " (press a key, or `%c` + extension; `%c` returns to the main menu)",
			node.ExtensionPrefix, node.ReturnKey)
	}
	sb.WriteString("\n")

	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		child := node.Children[key]
		fmt.Fprintf(sb, "%s  - `%s` → %s\n", indent, key, child.Prompt)
		describeNode(sb, child, indent+"  ")
	}
}
