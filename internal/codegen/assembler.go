package codegen

import (
	"strings"

	"github.com/vk/vsgen/internal/graph"
)

const indentUnit = "    "

// collectImports gathers import lines in first-occurrence order over the graph's node
// insertion order. Each node contributes its kind's import lines followed by an import
// of its callable's module.
func collectImports(g *graph.Graph, reachable map[graph.NodeID]bool, scope ImportScope) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(l string) {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			return
		}
		seen[l] = true
		out = append(out, l)
	}

	for _, n := range g.Nodes() {
		if scope == ImportsReachable && !reachable[n.ID] {
			continue
		}
		for _, l := range n.Imports {
			add(l)
		}
		if mod := callableModule(n.Callable); mod != "" {
			add("import " + mod)
		}
	}
	return out
}

// callableModule returns the module part of a dotted callable, or "" for builtins.
func callableModule(callable string) string {
	i := strings.LastIndex(callable, ".")
	if i <= 0 {
		return ""
	}
	return callable[:i]
}

// assemble lays out the module: imports, a blank line, the function header and the
// indented body.
func assemble(imports []string, fn string, params []Param, lines []line) string {
	var sb strings.Builder
	for _, l := range imports {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	if len(imports) > 0 {
		sb.WriteByte('\n')
	}

	sb.WriteString("def ")
	sb.WriteString(fn)
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		sb.WriteString(p.Default)
	}
	sb.WriteString("):\n")

	if len(lines) == 0 {
		sb.WriteString(indentUnit + "pass\n")
		return sb.String()
	}
	for _, l := range lines {
		sb.WriteString(strings.Repeat(indentUnit, l.indent+1))
		sb.WriteString(l.text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
