// Package importer reads a serialized host parse tree and builds the
// corresponding ast.Module.
//
// The input is a bblfsh-style object tree: every node is a mapping whose
// "@type" field names the host syntax class, with positions under "@pos"
// (uast:Positions) or in the host's own lineno/col_offset fields. The tree may
// be given as YAML, JSON or inside a fenced ```yaml / ```json block of a
// Markdown document.
package importer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bblfsh/sdk/v3/uast/nodes"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
)

// Format is an input document format.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Load decodes data in the given format into a module.
func Load(data []byte, format Format) (*ast.Module, error) {
	if format == FormatAuto || format == "" {
		format = detectFormat(data)
	}

	switch format {
	case FormatYAML, FormatJSON:
	case FormatMarkdown:
		block, err := extractTreeBlock(data)
		if err != nil {
			return nil, err
		}

		data = block
	default:
		return nil, fmt.Errorf("%w: '%s': must be one of auto, yaml, json, markdown", pyhdl.ErrUnsupportedInputFormat, format)
	}

	root, err := decode(data)
	if err != nil {
		return nil, err
	}

	return FromNode(root)
}

// LoadFile reads path and decodes it. With FormatAuto the format follows the
// file extension.
func LoadFile(path string, format Format) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file %s: %w", path, err)
	}

	if format == FormatAuto || format == "" {
		format = formatFromExt(path, data)
	}

	mod, err := Load(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mod, nil
}

// FromNode builds a module from an already decoded generic tree.
func FromNode(root nodes.Node) (*ast.Module, error) {
	obj, ok := root.(nodes.Object)
	if !ok {
		return nil, fmt.Errorf("%w: root is %s, want an object", pyhdl.ErrInvalidTree, kindOf(root))
	}

	d := &decoder{}

	mod := d.module(obj)
	if len(d.errs.Errors) > 0 {
		return nil, &d.errs
	}

	return mod, nil
}

func decode(data []byte) (nodes.Node, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", pyhdl.ErrInvalidTree, err)
	}

	root, err := nodes.ToNode(raw, toNodeFallback)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pyhdl.ErrInvalidTree, err)
	}

	return root, nil
}

// toNodeFallback converts the decoder's value shapes that nodes.ToNode does
// not know about.
func toNodeFallback(v any) (nodes.Node, error) {
	switch v := v.(type) {
	case map[any]any:
		obj := make(nodes.Object, len(v))
		for k, val := range v {
			n, err := nodes.ToNode(val, toNodeFallback)
			if err != nil {
				return nil, err
			}

			obj[fmt.Sprint(k)] = n
		}

		return obj, nil
	case yaml.MapSlice:
		obj := make(nodes.Object, len(v))
		for _, item := range v {
			n, err := nodes.ToNode(item.Value, toNodeFallback)
			if err != nil {
				return nil, err
			}

			obj[fmt.Sprint(item.Key)] = n
		}

		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}

func detectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)

	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		return FormatJSON
	case bytes.HasPrefix(trimmed, []byte("```")), bytes.Contains(trimmed, []byte("\n```")):
		return FormatMarkdown
	default:
		return FormatYAML
	}
}

func formatFromExt(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return detectFormat(data)
	}
}
