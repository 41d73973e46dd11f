package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"forensic/internal/core/errors"
)

// Grammar is the parsing capability the structural analyzer depends on.
// Scoring operates only on the returned tree's kind labels, so additional
// grammars plug in without touching the scoring policy.
type Grammar interface {
	// ID returns the language tag the grammar parses (e.g. "python").
	ID() string

	// Parse produces a syntax tree for the source, or a PARSE_FAILURE
	// error when the text is not syntactically valid. The caller owns the
	// returned tree and must Close it.
	Parse(source []byte) (*sitter.Tree, error)

	// IsFunctionKind reports whether a node kind denotes a function or
	// method definition in this grammar.
	IsFunctionKind(kind string) bool
}

type sitterGrammar struct {
	id            string
	functionKinds map[string]bool
	pool          *ParserPool
}

func newSitterGrammar(id string, lang *sitter.Language, functionKinds []string) *sitterGrammar {
	kinds := make(map[string]bool, len(functionKinds))
	for _, k := range functionKinds {
		kinds[k] = true
	}
	return &sitterGrammar{
		id:            id,
		functionKinds: kinds,
		pool:          NewParserPool(lang),
	}
}

func (g *sitterGrammar) ID() string {
	return g.id
}

func (g *sitterGrammar) IsFunctionKind(kind string) bool {
	return g.functionKinds[kind]
}

func (g *sitterGrammar) Parse(source []byte) (*sitter.Tree, error) {
	sp := g.pool.Get()
	defer g.pool.Put(sp)

	tree := sp.Parse(source, nil)
	if tree == nil {
		return nil, errors.AddContext(
			errors.New(errors.CodeParseFailure, "parser produced no tree"),
			errors.CtxLanguage, g.id)
	}

	// Tree-sitter always yields a tree; syntax errors surface as ERROR or
	// MISSING nodes. A tree containing them is a parse failure, not a
	// degenerate-but-valid document.
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, errors.AddContext(
			errors.New(errors.CodeParseFailure, "source is not syntactically valid"),
			errors.CtxLanguage, g.id)
	}

	return tree, nil
}
