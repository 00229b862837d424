package codegen

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/fsutil"
	"github.com/vk/vsgen/internal/graph"
)

// DefaultFunctionName names the generated function when Options leave it empty.
const DefaultFunctionName = "run"

// FileExtension is appended to module names by WriteModule.
const FileExtension = ".py"

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ImportScope selects which nodes contribute import lines.
type ImportScope int

const (
	// ImportsAll collects imports from every node of the graph.
	ImportsAll ImportScope = iota
	// ImportsReachable collects imports only from nodes the pass emitted or expanded.
	ImportsReachable
)

// ParseImportScope maps "all" and "reachable" to their scope.
func ParseImportScope(s string) (ImportScope, error) {
	switch s {
	case "", "all":
		return ImportsAll, nil
	case "reachable":
		return ImportsReachable, nil
	}
	return ImportsAll, fmt.Errorf("unknown import scope %q (expected all or reachable)", s)
}

func (s ImportScope) String() string {
	if s == ImportsReachable {
		return "reachable"
	}
	return "all"
}

// Options configures a Compiler.
type Options struct {
	FunctionName string
	ImportScope  ImportScope
	// Generators serves KindCustomCode nodes. It may be nil for graphs without them.
	Generators GeneratorSource
}

// Param is one parameter of the generated function.
type Param struct {
	Name    string
	Port    graph.PortID
	Default string
}

// Artifact is the result of a compilation.
type Artifact struct {
	FunctionName string
	Imports      []string
	Params       []Param
	Source       string
}

// Compiler turns graphs into Python source.
type Compiler struct {
	opts Options
}

// New creates a compiler. The zero Options compile to a function named run with
// imports collected from the whole graph.
func New(opts Options) *Compiler {
	if opts.FunctionName == "" {
		opts.FunctionName = DefaultFunctionName
	}
	return &Compiler{opts: opts}
}

// Compile generates the module source for g starting at entry. An empty entry uses the
// graph's designated entry node.
func (c *Compiler) Compile(ctx context.Context, g *graph.Graph, entry graph.NodeID) (*Artifact, error) {
	logger := ctxlog.FromContext(ctx).With("graph", g.Name)
	started := time.Now()

	if !identifierRegex.MatchString(c.opts.FunctionName) {
		return nil, fmt.Errorf("%w: function name %q", ErrInvalidName, c.opts.FunctionName)
	}

	start, err := findEntry(g, entry)
	if err != nil {
		return nil, err
	}

	p := newPass(g, logger, c.opts.Generators)
	params, err := seedParams(p, start)
	if err != nil {
		return nil, err
	}

	logger.Debug("Compiling graph.", "entry", start.ID, "params", len(params))
	if err := p.run(start, 0); err != nil {
		return nil, err
	}

	imports := collectImports(g, p.reachable, c.opts.ImportScope)
	art := &Artifact{
		FunctionName: c.opts.FunctionName,
		Imports:      imports,
		Params:       params,
		Source:       assemble(imports, c.opts.FunctionName, params, p.lines),
	}
	logger.Debug("Graph compiled.", "lines", len(p.lines), "imports", len(imports), "duration", time.Since(started))
	return art, nil
}

// WriteModule compiles g and atomically writes <dir>/<module>.py. It returns the path
// written.
func (c *Compiler) WriteModule(ctx context.Context, g *graph.Graph, entry graph.NodeID, module, dir string) (string, error) {
	path, err := ModulePath(dir, module)
	if err != nil {
		return "", err
	}
	art, err := c.Compile(ctx, g, entry)
	if err != nil {
		return "", err
	}
	if err := fsutil.WriteFileAtomic(path, []byte(art.Source), 0o644); err != nil {
		return "", err
	}
	ctxlog.FromContext(ctx).Info("Module written.", "graph", g.Name, "path", path)
	return path, nil
}

// ModulePath returns <dir>/<module>.py after checking that module is importable.
func ModulePath(dir, module string) (string, error) {
	if !identifierRegex.MatchString(module) {
		return "", fmt.Errorf("%w: module name %q", ErrInvalidName, module)
	}
	return filepath.Join(dir, module+FileExtension), nil
}

// findEntry validates the entry node: it must exist, be executable and have no exec
// predecessor.
func findEntry(g *graph.Graph, entry graph.NodeID) (*graph.Node, error) {
	if entry == "" {
		entry = g.Entry()
	}
	if entry == "" {
		return nil, fmt.Errorf("%w: graph %q designates no entry node", ErrMissingEntryPoint, g.Name)
	}
	n, err := g.Node(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingEntryPoint, err)
	}
	if n.Kind != graph.KindExecutable {
		return nil, fmt.Errorf("%w: entry node %q is %s, not executable", ErrMissingEntryPoint, n.ID, n.Kind)
	}
	hasPred, err := g.HasExecInput(n.ID)
	if err != nil {
		return nil, err
	}
	if hasPred {
		return nil, fmt.Errorf("%w: entry node %q has an exec predecessor", ErrMissingEntryPoint, n.ID)
	}
	return n, nil
}

// seedParams turns every unconnected Data/In port of the entry node into a function
// parameter in0, in1, ... whose default is the port's default literal.
func seedParams(p *pass, entry *graph.Node) ([]Param, error) {
	ins, err := p.g.InputsOf(entry.ID)
	if err != nil {
		return nil, err
	}
	var params []Param
	for _, in := range ins {
		if in.IsExec() || p.g.IsConnected(in.ID) {
			continue
		}
		name := fmt.Sprintf("in%d", len(params))
		p.params[in.ID] = name
		params = append(params, Param{Name: name, Port: in.ID, Default: RenderLiteral(in.Default)})
	}
	return params, nil
}
