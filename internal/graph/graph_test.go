package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addFunc adds an executable node with one data input, one data output and an exec pair.
func addFunc(t *testing.T, g *Graph, id string) *Node {
	t.Helper()
	n, err := g.AddNode(Node{ID: NodeID(id), Kind: KindExecutable, Callable: "mod.f"},
		ExecIn("exec"),
		DataIn("value", String("")),
		ExecOut("exec"),
		DataOut("result"),
	)
	require.NoError(t, err)
	return n
}

func port(t *testing.T, g *Graph, id string, dir Direction, name string) PortID {
	t.Helper()
	p, err := g.PortByName(NodeID(id), dir, name)
	require.NoError(t, err)
	return p.ID
}

func TestAddNode(t *testing.T) {
	g := New("test")
	n := addFunc(t, g, "a")

	assert.Len(t, n.Inputs, 2)
	assert.Len(t, n.Outputs, 2)
	assert.NotNil(t, n.Properties)

	_, err := g.AddNode(Node{ID: "a"})
	assert.ErrorIs(t, err, ErrDuplicateNode)

	_, err = g.AddNode(Node{ID: "not valid"})
	assert.ErrorIs(t, err, ErrInvalidNodeID)

	_, err = g.AddNode(Node{ID: "b"}, DataIn("x", None()), DataIn("x", None()))
	assert.ErrorIs(t, err, ErrDuplicatePort)

	// Same name in different directions is allowed.
	_, err = g.AddNode(Node{ID: "c"}, ExecIn("exec"), ExecOut("exec"))
	assert.NoError(t, err)
}

func TestAddNode_RejectsInvalidUTF8(t *testing.T) {
	g := New("test")

	_, err := g.AddNode(Node{ID: "a", Kind: KindExecutable}, DataIn("value", String("caf\xe9")))
	require.ErrorIs(t, err, ErrInvalidLiteral)
	assert.ErrorContains(t, err, `port "value"`)

	_, err = g.AddNode(Node{
		ID:         "b",
		Kind:       KindInline,
		Properties: map[string]Literal{"code": Expression("x = '\xff'"), "ok": String("café")},
	})
	require.ErrorIs(t, err, ErrInvalidLiteral)
	assert.ErrorContains(t, err, `property "code"`)

	_, err = g.AddNode(Node{ID: "c", Kind: KindExecutable}, DataIn("value", String("café ☕")))
	assert.NoError(t, err)
}

func TestNodesKeepInsertionOrder(t *testing.T) {
	g := New("test")
	for _, id := range []string{"z", "a", "m"} {
		addFunc(t, g, id)
	}
	var ids []NodeID
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []NodeID{"z", "a", "m"}, ids)
}

func TestConnect(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New("test")
		addFunc(t, g, "a")
		addFunc(t, g, "b")

		require.NoError(t, g.Connect(port(t, g, "a", Out, "exec"), port(t, g, "b", In, "exec")))
		require.NoError(t, g.Connect(port(t, g, "a", Out, "result"), port(t, g, "b", In, "value")))

		conn, ok, err := g.ConnectionFrom(port(t, g, "b", In, "value"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, port(t, g, "a", Out, "result"), conn.From)

		next, err := g.ExecSuccessor(port(t, g, "a", Out, "exec"))
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, NodeID("b"), next.ID)

		assert.True(t, g.IsConnected(port(t, g, "a", Out, "result")))
		hasExec, err := g.HasExecInput("b")
		require.NoError(t, err)
		assert.True(t, hasExec)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New("test")
		addFunc(t, g, "a")
		addFunc(t, g, "b")
		addFunc(t, g, "c")

		err := g.Connect(port(t, g, "a", Out, "exec"), port(t, g, "b", In, "value"))
		assert.ErrorIs(t, err, ErrInvalidConnection, "channels must not cross")

		err = g.Connect(port(t, g, "a", In, "value"), port(t, g, "b", In, "value"))
		assert.ErrorIs(t, err, ErrInvalidConnection, "source must be an output")

		err = g.Connect(port(t, g, "a", Out, "result"), port(t, g, "a", In, "value"))
		assert.ErrorIs(t, err, ErrInvalidConnection, "self connection")

		require.NoError(t, g.Connect(port(t, g, "a", Out, "exec"), port(t, g, "b", In, "exec")))
		err = g.Connect(port(t, g, "a", Out, "exec"), port(t, g, "c", In, "exec"))
		assert.ErrorIs(t, err, ErrInvalidConnection, "exec output fan-out")

		require.NoError(t, g.Connect(port(t, g, "a", Out, "result"), port(t, g, "c", In, "value")))
		err = g.Connect(port(t, g, "b", Out, "result"), port(t, g, "c", In, "value"))
		assert.ErrorIs(t, err, ErrInvalidConnection, "single data input fan-in")

		err = g.Connect(PortID(999), port(t, g, "c", In, "value"))
		assert.ErrorIs(t, err, ErrInvalidReference)
	})

	t.Run("multi input takes first connection", func(t *testing.T) {
		g := New("test")
		addFunc(t, g, "a")
		addFunc(t, g, "b")
		_, err := g.AddNode(Node{ID: "sink"}, PortSpec{Name: "items", Direction: In, Channel: Data, Multi: true})
		require.NoError(t, err)

		sink := port(t, g, "sink", In, "items")
		require.NoError(t, g.Connect(port(t, g, "b", Out, "result"), sink))
		require.NoError(t, g.Connect(port(t, g, "a", Out, "result"), sink))

		conn, ok, err := g.ConnectionFrom(sink)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, port(t, g, "b", Out, "result"), conn.From)
	})
}

func TestLookups(t *testing.T) {
	g := New("test")
	addFunc(t, g, "a")

	_, err := g.Node("missing")
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = g.InputsOf("missing")
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = g.OutputsOf("missing")
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = g.PortByName("a", In, "nope")
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, _, err = g.ConnectionFrom(port(t, g, "a", Out, "result"))
	assert.ErrorIs(t, err, ErrInvalidReference, "ConnectionFrom requires an input port")

	_, err = g.ExecSuccessor(port(t, g, "a", Out, "result"))
	assert.ErrorIs(t, err, ErrInvalidReference, "ExecSuccessor requires an exec output")

	next, err := g.ExecSuccessor(port(t, g, "a", Out, "exec"))
	require.NoError(t, err)
	assert.Nil(t, next)

	_, ok, err := g.ConnectionFrom(port(t, g, "a", In, "value"))
	require.NoError(t, err)
	assert.False(t, ok)

	data, err := g.DataOutputsOf("a")
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "result", data[0].Name)

	assert.ErrorIs(t, g.SetEntry("missing"), ErrInvalidReference)
	require.NoError(t, g.SetEntry("a"))
	assert.Equal(t, NodeID("a"), g.Entry())
}

func TestDetectDataCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		assert.NoError(t, New("test").DetectDataCycles())
	})

	t.Run("valid chain has no cycles", func(t *testing.T) {
		g := New("test")
		addFunc(t, g, "a")
		addFunc(t, g, "b")
		addFunc(t, g, "c")
		require.NoError(t, g.Connect(port(t, g, "a", Out, "result"), port(t, g, "b", In, "value")))
		require.NoError(t, g.Connect(port(t, g, "b", Out, "result"), port(t, g, "c", In, "value")))
		assert.NoError(t, g.DetectDataCycles())
	})

	t.Run("exec edges are ignored", func(t *testing.T) {
		g := New("test")
		addFunc(t, g, "a")
		addFunc(t, g, "b")
		require.NoError(t, g.Connect(port(t, g, "a", Out, "result"), port(t, g, "b", In, "value")))
		require.NoError(t, g.Connect(port(t, g, "b", Out, "exec"), port(t, g, "a", In, "exec")))
		assert.NoError(t, g.DetectDataCycles())
	})

	t.Run("two node cycle is detected", func(t *testing.T) {
		g := New("test")
		addFunc(t, g, "a")
		addFunc(t, g, "b")
		require.NoError(t, g.Connect(port(t, g, "a", Out, "result"), port(t, g, "b", In, "value")))
		require.NoError(t, g.Connect(port(t, g, "b", Out, "result"), port(t, g, "a", In, "value")))
		err := g.DetectDataCycles()
		assert.ErrorIs(t, err, ErrDataCycle)
		assert.ErrorContains(t, err, `"a"`)
	})
}

func TestParseControlVariant(t *testing.T) {
	v, ok := ParseControlVariant("while_loop")
	assert.True(t, ok)
	assert.Equal(t, ControlWhileLoop, v)

	_, ok = ParseControlVariant("none")
	assert.False(t, ok)

	_, ok = ParseControlVariant("switch")
	assert.False(t, ok)
}
