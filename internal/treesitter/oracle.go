package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/importsweep/importsweep/internal/model"
)

// Oracle resolves symbol usage against a tree-sitter parse of the file.
// It satisfies the analyzer's UsageOracle contract, so it can replace the
// pattern-matching oracle without touching classification or aggregation.
type Oracle struct {
	parser *sitter.Parser

	// trees memoizes one parse per file path; every declaration in a file
	// queries the same tree.
	trees map[string]*parsedFile
}

type parsedFile struct {
	tree   *sitter.Tree
	source []byte
}

// NewOracle creates an Oracle using the JavaScript grammar.
func NewOracle() *Oracle {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	return &Oracle{
		parser: parser,
		trees:  make(map[string]*parsedFile),
	}
}

// Name implements the usage-oracle contract.
func (o *Oracle) Name() string { return "tree-sitter" }

// Close releases all memoized parse trees.
func (o *Oracle) Close() {
	for _, pf := range o.trees {
		pf.tree.Close()
	}
	o.trees = make(map[string]*parsedFile)
}

// Usages walks the file's syntax tree and counts identifier nodes equal to
// sym, excluding the import declaration's own line and identifiers inside
// any import statement. Each occurrence is attributed to one evidence class
// from its parent node.
func (o *Oracle) Usages(file *model.SourceFile, decl *model.ImportDeclaration, sym string) (model.UsageEvidence, error) {
	pf, err := o.parse(file)
	if err != nil {
		return model.UsageEvidence{}, err
	}

	var ev model.UsageEvidence
	walk(pf.tree.RootNode(), func(n *sitter.Node) {
		switch n.Type() {
		case "identifier", "jsx_identifier":
		default:
			return
		}
		if string(pf.source[n.StartByte():n.EndByte()]) != sym {
			return
		}
		if int(n.StartPoint().Row)+1 == decl.Line {
			return
		}
		if insideImportStatement(n) {
			return
		}

		parent := n.Parent()
		switch {
		case parent == nil:
			ev.Bare++
		case parent.Type() == "jsx_opening_element" || parent.Type() == "jsx_self_closing_element":
			ev.JSXTag++
		case parent.Type() == "call_expression" && sameNode(parent.ChildByFieldName("function"), n):
			ev.Call++
		case parent.Type() == "member_expression" && sameNode(parent.ChildByFieldName("object"), n):
			ev.PropertyAccess++
		default:
			ev.Bare++
		}
	})

	return ev, nil
}

func (o *Oracle) parse(file *model.SourceFile) (*parsedFile, error) {
	if pf, ok := o.trees[file.Path]; ok {
		return pf, nil
	}

	source := []byte(file.Content)
	tree, err := o.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s", file.Path)
	}

	pf := &parsedFile{tree: tree, source: source}
	o.trees[file.Path] = pf
	return pf, nil
}

// walk applies visitor to node and all of its descendants.
func walk(node *sitter.Node, visitor func(*sitter.Node)) {
	visitor(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visitor)
	}
}

// insideImportStatement reports whether the node sits anywhere under an
// import statement. A symbol mentioned in another file's worth of import
// lists is a binding, not a use.
func insideImportStatement(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "import_statement" {
			return true
		}
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
