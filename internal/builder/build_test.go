package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/config"
	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/graph"
	"github.com/vk/vsgen/internal/hcl"
	"github.com/vk/vsgen/internal/registry"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

const kinds = `
node_kind "exec_start" {
  executable = true
  entry      = true
}

node_kind "print" {
  executable = true
  callable   = "builtins.print"
  input "value" { default = "" }
}

node_kind "constant_string" {
  inline = "${repr(property.value)}"
  property "value" { default = "" }
  output "value" {}
}

node_kind "add" {
  inline = "(${lhs} + ${rhs})"
  input "lhs" { default = 0 }
  input "rhs" { default = 0 }
  output "result" {}
}

node_kind "if" {
  control = "if"
}
`

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	model, err := hcl.NewLoader().LoadSource(testContext(), []byte(kinds), "kinds.hcl")
	require.NoError(t, err)
	r := registry.New()
	require.NoError(t, r.AddKinds(model))
	return r
}

func loadGraph(t *testing.T, src string) *config.GraphDefinition {
	t.Helper()
	model, err := hcl.NewLoader().LoadSource(testContext(), []byte(src), "graph.hcl")
	require.NoError(t, err)
	def, err := model.Graph("")
	require.NoError(t, err)
	return def
}

func TestBuild_CompilesEndToEnd(t *testing.T) {
	def := loadGraph(t, `
graph "Hello World" {
  node "start" {
    kind = "exec_start"
  }
  node "greeting" {
    kind       = "constant_string"
    properties = { value = "hi" }
  }
  node "greet" {
    kind = "print"
  }
  node "sum" {
    kind       = "add"
    properties = { rhs = 2 }
  }
  node "show" {
    kind = "print"
  }
  connect {
    from = "start.exec"
    to   = "greet.exec"
  }
  connect {
    from = "greeting.value"
    to   = "greet.value"
  }
  connect {
    from = "greet.exec"
    to   = "show.exec"
  }
  connect {
    from = "sum.result"
    to   = "show.value"
  }
}
`)
	g, err := Build(testContext(), def, newRegistry(t), "")
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID("start"), g.Entry(), "the only entry kind node is the entry")

	art, err := codegen.New(codegen.Options{}).Compile(testContext(), g, "")
	require.NoError(t, err)
	assert.Equal(t, `import builtins

def run():
    builtins.print("hi")
    builtins.print((0 + 2))
`, art.Source)
}

func TestBuild_PropertiesOverrideInputDefaults(t *testing.T) {
	def := loadGraph(t, `
graph "g" {
  node "show" {
    kind       = "print"
    name       = "Show"
    properties = { value = "x", extra = 1 }
  }
}
`)
	g, err := Build(testContext(), def, newRegistry(t), "")
	require.NoError(t, err)

	n, err := g.Node("show")
	require.NoError(t, err)
	assert.Equal(t, "Show", n.Name)
	assert.Equal(t, graph.KindExecutable, n.Kind)
	assert.Equal(t, map[string]graph.Literal{"extra": graph.Int(1)}, n.Properties)

	p, err := g.PortByName("show", graph.In, "value")
	require.NoError(t, err)
	assert.Equal(t, graph.String("x"), p.Default)
}

func TestBuild_ControlLayout(t *testing.T) {
	def := loadGraph(t, `
graph "g" {
  node "branch" {
    kind = "if"
  }
}
`)
	g, err := Build(testContext(), def, newRegistry(t), "")
	require.NoError(t, err)
	n, err := g.Node("branch")
	require.NoError(t, err)
	assert.Equal(t, graph.KindControlFlow, n.Kind)
	assert.Equal(t, graph.ControlIf, n.Control)
	assert.Equal(t, "branch", n.Name)

	_, err = g.PortByName("branch", graph.Out, codegen.PortFalse)
	assert.NoError(t, err)
}

func TestBuild_EntrySelection(t *testing.T) {
	src := `
graph "g" {
  entry = "a"
  node "a" {
    kind = "exec_start"
  }
  node "b" {
    kind = "exec_start"
  }
}
`
	r := newRegistry(t)

	g, err := Build(testContext(), loadGraph(t, src), r, "")
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID("a"), g.Entry())

	g, err = Build(testContext(), loadGraph(t, src), r, "b")
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID("b"), g.Entry(), "explicit entry overrides the graph file")

	def := loadGraph(t, src)
	def.Entry = ""
	_, err = Build(testContext(), def, r, "")
	assert.ErrorIs(t, err, ErrAmbiguousEntry)

	_, err = Build(testContext(), loadGraph(t, src), r, "missing")
	assert.ErrorIs(t, err, graph.ErrInvalidReference)
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		errIs   error
		errText string
	}{
		{
			name: "unknown kind",
			src: `
graph "g" {
  node "a" {
    kind = "teleport"
  }
}
`,
			errIs: registry.ErrUnknownKind,
		},
		{
			name: "unknown port",
			src: `
graph "g" {
  node "a" {
    kind = "exec_start"
  }
  node "b" {
    kind = "print"
  }
  connect {
    from = "a.exec"
    to   = "b.nope"
  }
}
`,
			errIs: graph.ErrInvalidReference,
		},
		{
			name: "crossed channels",
			src: `
graph "g" {
  node "a" {
    kind = "exec_start"
  }
  node "b" {
    kind = "print"
  }
  connect {
    from = "a.exec"
    to   = "b.value"
  }
}
`,
			errIs: graph.ErrInvalidConnection,
		},
		{
			name: "duplicate node",
			src: `
graph "g" {
  node "a" {
    kind = "print"
  }
  node "a" {
    kind = "print"
  }
}
`,
			errIs: graph.ErrDuplicateNode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(testContext(), loadGraph(t, tc.src), newRegistry(t), "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}
