package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/bblfsh/sdk/v3/uast/nodes"
	"github.com/shibukawa/pyhdl"
	"github.com/shibukawa/pyhdl/ast"
	"github.com/shibukawa/pyhdl/dump"
	"github.com/shibukawa/pyhdl/testhelper"
	"github.com/stretchr/testify/require"
)

// def tick(self, x):
//     self.out[1:2] = x
const tickYAML = `
"@type": Module
body:
  - "@type": FunctionDef
    name: tick
    lineno: 2
    col_offset: 0
    args:
      "@type": arguments
      args:
        - {"@type": arg, arg: self, lineno: 2, col_offset: 9}
        - {"@type": arg, arg: x, lineno: 2, col_offset: 15}
    decorator_list:
      - {"@type": Name, id: comb, lineno: 1, col_offset: 1}
    body:
      - "@type": Assign
        lineno: 3
        col_offset: 4
        targets:
          - "@type": Subscript
            lineno: 3
            col_offset: 4
            value:
              "@type": Attribute
              attr: out
              lineno: 3
              col_offset: 4
              value: {"@type": Name, id: self, lineno: 3, col_offset: 4}
            slice:
              "@type": Slice
              lower: {"@type": Num, n: 1, lineno: 3, col_offset: 13}
              upper: {"@type": Num, n: 2, lineno: 3, col_offset: 15}
        value: {"@type": Name, id: x, lineno: 3, col_offset: 20}
`

const tickDump = `
	Module
	  body:
	    FunctionDef name=tick @2:1
	      params:
	        Param name=self @2:10
	        Param name=x @2:16
	      body:
	        Assign @3:5
	          targets:
	            Subscript @3:5
	              value:
	                Attribute attr=out @3:5
	                  value:
	                    Name id=self @3:5
	              slice:
	                Slice
	                  lower:
	                    Num value=1 @3:14
	                  upper:
	                    Num value=2 @3:16
	                  step: -
	          value:
	            Name id=x @3:21
	      decorators:
	        Name id=comb @1:2
`

func TestLoad_YAML(t *testing.T) {
	mod, err := Load([]byte(tickYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, testhelper.TrimIndent(t, tickDump), dump.Text(mod, dump.Options{Positions: true}))
}

func TestLoad_JSON(t *testing.T) {
	src := `{
  "@type": "Module",
  "body": [{
    "@type": "FunctionDef",
    "name": "tick",
    "args": {"@type": "arguments", "args": [{"@type": "arg", "arg": "s"}]},
    "body": [{
      "@type": "AugAssign",
      "target": {"@type": "Subscript",
        "value": {"@type": "Name", "id": "s"},
        "slice": {"@type": "Index", "value": {"@type": "Constant", "value": 3}}},
      "op": {"@type": "Add"},
      "value": {"@type": "Constant", "value": 1.5}
    }, {
      "@type": "Return"
    }],
    "decorator_list": []
  }]
}`

	for _, format := range []Format{FormatJSON, FormatAuto} {
		t.Run(string(format), func(t *testing.T) {
			mod, err := Load([]byte(src), format)
			require.NoError(t, err)

			expected := testhelper.TrimIndent(t, `
				Module
				  body:
				    FunctionDef name=tick
				      params:
				        Param name=s
				      body:
				        AugAssign op=Add
				          target:
				            Subscript
				              value:
				                Name id=s
				              slice:
				                Index
				                  value:
				                    Num value=3
				          value:
				            Num value=1.5
				        Return
				          value: -
				      decorators: []
			`)
			assert.Equal(t, expected, dump.Text(mod, dump.Options{}))
		})
	}
}

func TestLoad_Markdown(t *testing.T) {
	src := "# tick\n\nThe parsed body of `tick`.\n\n```python\ndef tick(s): pass\n```\n\n```yaml\n" +
		`"@type": Module
body:
  - "@type": FunctionDef
    name: tick
    args: {"@type": arguments, args: [{"@type": arg, arg: s}]}
    body:
      - {"@type": Expr, value: {"@type": Constant, value: "done"}}
      - {"@type": Expr, value: {"@type": Constant, value: true}}
      - {"@type": Expr, value: {"@type": Constant, value: null}}
` + "```\n"

	for _, format := range []Format{FormatMarkdown, FormatAuto} {
		t.Run(string(format), func(t *testing.T) {
			mod, err := Load([]byte(src), format)
			require.NoError(t, err)

			fn := mod.Body[0].(*ast.FunctionDef)
			assert.Equal(t, 3, len(fn.Body))
			assert.Equal[ast.Expr](t, &ast.Str{Value: "done"}, fn.Body[0].(*ast.ExprStmt).Value)
			assert.Equal[ast.Expr](t, &ast.NameConstant{Value: "True"}, fn.Body[1].(*ast.ExprStmt).Value)
			assert.Equal[ast.Expr](t, &ast.NameConstant{Value: "None"}, fn.Body[2].(*ast.ExprStmt).Value)
		})
	}
}

func TestLoad_UastPositions(t *testing.T) {
	src := `
"@type": Module
body:
  - "@type": Pass
    "@pos":
      "@type": "uast:Positions"
      start: {"@type": "uast:Position", offset: 42, line: 4, col: 9}
      end: {"@type": "uast:Position", offset: 46, line: 4, col: 13}
`
	mod, err := Load([]byte(src), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, ast.Position{Line: 4, Column: 9, Offset: 42}, mod.Body[0].Pos())
}

func TestLoad_Operators(t *testing.T) {
	src := `
"@type": Module
body:
  - "@type": Expr
    value:
      "@type": BoolOp
      op: And
      values:
        - "@type": Compare
          left: {"@type": Name, id: a}
          ops: [Lt, {"@type": LtE}]
          comparators: [{"@type": Num, n: 0}, {"@type": Name, id: b}]
        - "@type": UnaryOp
          op: {"@type": Not}
          operand: {"@type": NameConstant, value: False}
`
	mod, err := Load([]byte(src), FormatYAML)
	require.NoError(t, err)

	boolOp := mod.Body[0].(*ast.ExprStmt).Value.(*ast.BoolOp)
	assert.Equal(t, "And", boolOp.Op)
	assert.Equal(t, []string{"Lt", "LtE"}, boolOp.Values[0].(*ast.Compare).Ops)

	unary := boolOp.Values[1].(*ast.UnaryOp)
	assert.Equal(t, "Not", unary.Op)
	assert.Equal[ast.Expr](t, &ast.NameConstant{Value: "False"}, unary.Operand)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
		want   error
	}{
		{
			name:   "unsupported format",
			src:    `"@type": Module`,
			format: "toml",
			want:   pyhdl.ErrUnsupportedInputFormat,
		},
		{
			name:   "broken yaml",
			src:    "body: [",
			format: FormatYAML,
			want:   pyhdl.ErrInvalidTree,
		},
		{
			name:   "scalar root",
			src:    "42",
			format: FormatYAML,
			want:   pyhdl.ErrInvalidTree,
		},
		{
			name:   "root is not a module",
			src:    `{"@type": FunctionDef, name: tick}`,
			format: FormatYAML,
			want:   pyhdl.ErrInvalidTree,
		},
		{
			name:   "unknown statement",
			src:    `{"@type": Module, body: [{"@type": Try}]}`,
			format: FormatYAML,
			want:   pyhdl.ErrUnhandledNodeKind,
		},
		{
			name:   "unknown expression",
			src:    `{"@type": Module, body: [{"@type": Expr, value: {"@type": Lambda}}]}`,
			format: FormatYAML,
			want:   pyhdl.ErrUnhandledNodeKind,
		},
		{
			name:   "missing attribute value",
			src:    `{"@type": Module, body: [{"@type": Expr, value: {"@type": Attribute, attr: x}}]}`,
			format: FormatYAML,
			want:   pyhdl.ErrInvalidTree,
		},
		{
			name:   "non numeric literal",
			src:    `{"@type": Module, body: [{"@type": Expr, value: {"@type": Num, n: [1]}}]}`,
			format: FormatYAML,
			want:   pyhdl.ErrInvalidTree,
		},
		{
			name:   "markdown without tree block",
			src:    "# tick\n\n```python\npass\n```\n",
			format: FormatMarkdown,
			want:   pyhdl.ErrNoTreeBlock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := Load([]byte(tt.src), tt.format)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Zero(t, mod)
		})
	}
}

func TestLoad_CollectsAllErrors(t *testing.T) {
	src := `
"@type": Module
body:
  - {"@type": Try, lineno: 2, col_offset: 0}
  - "@type": Expr
    value: {"@type": Lambda, lineno: 3, col_offset: 4}
  - {"@type": Pass}
`
	_, err := Load([]byte(src), FormatYAML)
	assert.Error(t, err)

	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, 2, len(perr.Errors))
	assert.Contains(t, perr.Errors[0].Error(), "statement 'Try' at 2:1")
	assert.Contains(t, perr.Errors[1].Error(), "expression 'Lambda' at 3:5")
	assert.Contains(t, err.Error(), "multiple parse errors:")
	assert.True(t, errors.Is(err, pyhdl.ErrUnhandledNodeKind))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "tick.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(tickYAML), 0o644))

	mdPath := filepath.Join(dir, "tick.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("# tick\n\n```yaml\n"+tickYAML+"```\n"), 0o644))

	for _, path := range []string{yamlPath, mdPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			mod, err := LoadFile(path, FormatAuto)
			require.NoError(t, err)
			assert.Equal(t, testhelper.TrimIndent(t, tickDump), dump.Text(mod, dump.Options{Positions: true}))
		})
	}

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"), FormatAuto)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFromNode(t *testing.T) {
	root := nodes.Object{
		"@type": nodes.String("Module"),
		"body": nodes.Array{
			nodes.Object{"@type": nodes.String("Break"), "lineno": nodes.Int(7), "col_offset": nodes.Int(8)},
		},
	}

	mod, err := FromNode(root)
	require.NoError(t, err)
	assert.Equal[ast.Stmt](t, &ast.Break{Position: ast.Position{Line: 7, Column: 9}}, mod.Body[0])

	_, err = FromNode(nodes.Array{})
	assert.True(t, errors.Is(err, pyhdl.ErrInvalidTree))
}
