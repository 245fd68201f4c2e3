package layout

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// NamespaceParser extracts namespace declarations from C# source.
type NamespaceParser struct {
	parser *sitter.Parser
}

func NewNamespaceParser() *NamespaceParser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())
	return &NamespaceParser{parser: p}
}

// Parse returns the fully qualified namespaces declared in content, in
// source order. Nested block namespaces are joined with their parents.
func (n *NamespaceParser) Parse(ctx context.Context, content []byte) ([]string, error) {
	tree, err := n.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	namespaces := make([]string, 0)
	collectNamespaces(tree.RootNode(), content, "", &namespaces)
	return namespaces, nil
}

func collectNamespaces(node *sitter.Node, content []byte, prefix string, out *[]string) {
	switch node.Type() {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			break
		}
		name := nameNode.Content(content)
		if prefix != "" {
			name = prefix + "." + name
		}
		*out = append(*out, name)
		prefix = name
	case "class_declaration", "struct_declaration", "interface_declaration",
		"enum_declaration", "record_declaration", "delegate_declaration":
		// Types cannot contain namespaces.
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectNamespaces(node.NamedChild(i), content, prefix, out)
	}
}
