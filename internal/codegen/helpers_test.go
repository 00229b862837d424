package codegen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/graph"
)

// testGraph is a small builder for hand-assembled graphs.
type testGraph struct {
	t *testing.T
	g *graph.Graph
}

func newTestGraph(t *testing.T) *testGraph {
	t.Helper()
	return &testGraph{t: t, g: graph.New("Test")}
}

func (tg *testGraph) add(n graph.Node, specs ...graph.PortSpec) {
	tg.t.Helper()
	_, err := tg.g.AddNode(n, specs...)
	require.NoError(tg.t, err)
}

// start adds a callable-less entry marker with a single exec output and makes it the
// graph entry.
func (tg *testGraph) start(id string) {
	tg.t.Helper()
	tg.add(graph.Node{ID: graph.NodeID(id), Kind: graph.KindExecutable}, graph.ExecOut("exec"))
	require.NoError(tg.t, tg.g.SetEntry(graph.NodeID(id)))
}

// exec adds an executable node with an exec pair plus the given ports.
func (tg *testGraph) exec(id, callable string, specs ...graph.PortSpec) {
	tg.t.Helper()
	all := append([]graph.PortSpec{graph.ExecIn("exec"), graph.ExecOut("exec")}, specs...)
	tg.add(graph.Node{ID: graph.NodeID(id), Kind: graph.KindExecutable, Callable: callable}, all...)
}

// print adds an exec node calling print with one value input.
func (tg *testGraph) print(id string, def graph.Literal) {
	tg.t.Helper()
	tg.exec(id, "print", graph.DataIn("value", def))
}

// pure adds an executable node without exec ports.
func (tg *testGraph) pure(id, callable string, specs ...graph.PortSpec) {
	tg.t.Helper()
	tg.add(graph.Node{ID: graph.NodeID(id), Kind: graph.KindExecutable, Callable: callable}, specs...)
}

// constant adds an inline node whose single output expands to text.
func (tg *testGraph) constant(id, text string) {
	tg.t.Helper()
	tg.add(graph.Node{
		ID:   graph.NodeID(id),
		Kind: graph.KindInline,
		Inline: graph.InlineFunc(func(map[string]string) (string, error) {
			return text, nil
		}),
	}, graph.DataOut("value"))
}

// binary adds an inline node rendering "(<lhs> op <rhs>)".
func (tg *testGraph) binary(id, op string, lhs, rhs graph.Literal) {
	tg.t.Helper()
	tg.add(graph.Node{
		ID:   graph.NodeID(id),
		Kind: graph.KindInline,
		Inline: graph.InlineFunc(func(args map[string]string) (string, error) {
			return "(" + args["lhs"] + " " + op + " " + args["rhs"] + ")", nil
		}),
	}, graph.DataIn("lhs", lhs), graph.DataIn("rhs", rhs), graph.DataOut("result"))
}

func (tg *testGraph) control(id string, v graph.ControlVariant) {
	tg.t.Helper()
	tg.add(graph.Node{ID: graph.NodeID(id), Kind: graph.KindControlFlow, Control: v, ControlName: v.String()}, ControlPorts(v)...)
}

// connect links "node.port" outputs to "node.port" inputs.
func (tg *testGraph) connect(from, to string) {
	tg.t.Helper()
	src := tg.port(from, graph.Out)
	dst := tg.port(to, graph.In)
	require.NoError(tg.t, tg.g.Connect(src, dst))
}

func (tg *testGraph) port(ref string, dir graph.Direction) graph.PortID {
	tg.t.Helper()
	node, name, ok := strings.Cut(ref, ".")
	require.True(tg.t, ok, "bad port reference %q", ref)
	p, err := tg.g.PortByName(graph.NodeID(node), dir, name)
	require.NoError(tg.t, err)
	return p.ID
}

func (tg *testGraph) compile(opts Options) (string, error) {
	tg.t.Helper()
	art, err := New(opts).Compile(testContext(), tg.g, "")
	if err != nil {
		return "", err
	}
	return art.Source, nil
}

func (tg *testGraph) mustCompile(opts Options) string {
	tg.t.Helper()
	src, err := tg.compile(opts)
	require.NoError(tg.t, err)
	return src
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}
