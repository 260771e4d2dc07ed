package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shibukawa/pyhdl"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// extractTreeBlock returns the content of the first fenced yaml, yml or json
// code block of a Markdown document.
func extractTreeBlock(content []byte) ([]byte, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var block []byte

	err := gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		fenced, ok := n.(*gmast.FencedCodeBlock)
		if !ok || !isTreeBlock(fenced, content) {
			return gmast.WalkContinue, nil
		}

		block = codeBlockContent(fenced, content)

		return gmast.WalkStop, nil
	})
	if err != nil {
		return nil, err
	}

	if block == nil {
		return nil, fmt.Errorf("%w: no ```yaml or ```json block", pyhdl.ErrNoTreeBlock)
	}

	return block, nil
}

func isTreeBlock(codeBlock *gmast.FencedCodeBlock, content []byte) bool {
	switch strings.ToLower(string(codeBlock.Language(content))) {
	case "yaml", "yml", "json":
		return true
	default:
		return false
	}
}

func codeBlockContent(codeBlock gmast.Node, content []byte) []byte {
	var buf bytes.Buffer

	lines := codeBlock.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(content))
	}

	// an empty block still counts as found
	if buf.Len() == 0 {
		return []byte{}
	}

	return buf.Bytes()
}
