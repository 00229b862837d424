// Package table provides the CSV row processor node, a custom-code kind that reads a
// table and loops over its rows.
package table

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/registry"
)

// GeneratorName is the generator referenced by the csv_rows manifest.
const GeneratorName = "table.csv_rows"

// Port names of the csv_rows kind.
const (
	PortLoop      = "loop"
	PortCompleted = "completed"
	PortPath      = "path"
	PortSeparator = "separator"
	PortEncoding  = "encoding"
	PortTable     = "table"
	PortHeader    = "header"
	PortRowDict   = "row_dict"
	PortRow       = "row"
)

//go:embed manifests/*.hcl
var manifests embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the csv_rows generator.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator(GeneratorName, codegen.GeneratorFunc(GenerateCSVRows))
}

// Manifests returns the embedded kind manifests.
func (m *Module) Manifests() fs.FS {
	sub, err := fs.Sub(manifests, "manifests")
	if err != nil {
		panic(err)
	}
	return sub
}

// GenerateCSVRows emits:
//
//	var_<id>_0 = list(csv.reader(open(<path>, newline="", encoding=<encoding>), delimiter=<separator>))
//	var_<id>_1 = var_<id>_0[0] if var_<id>_0 else []
//	for var_<id> in var_<id>_0[1:]:
//	    var_<id>_2 = dict(zip(var_<id>_1, var_<id>))
//	    <loop>
//	<completed>
//
// The row dict line is only written when its output is connected; the row output is
// the loop variable itself.
func GenerateCSVRows(b *codegen.Block) error {
	path, err := b.Input(PortPath)
	if err != nil {
		return err
	}
	sep, err := b.Input(PortSeparator)
	if err != nil {
		return err
	}
	enc, err := b.Input(PortEncoding)
	if err != nil {
		return err
	}
	tableVar, err := b.Var(PortTable)
	if err != nil {
		return err
	}
	headerVar, err := b.Var(PortHeader)
	if err != nil {
		return err
	}
	rowVar := b.LoopVar()
	if err := b.Bind(PortRow, rowVar); err != nil {
		return err
	}

	b.Linef(b.Indent(), "%s = list(csv.reader(open(%s, newline=\"\", encoding=%s), delimiter=%s))", tableVar, path, enc, sep)
	b.Linef(b.Indent(), "%s = %s[0] if %s else []", headerVar, tableVar, tableVar)

	var pre []string
	if b.Connected(PortRowDict) {
		dictVar, err := b.Var(PortRowDict)
		if err != nil {
			return err
		}
		pre = append(pre, fmt.Sprintf("%s = dict(zip(%s, %s))", dictVar, headerVar, rowVar))
	}

	b.Linef(b.Indent(), "for %s in %s[1:]:", rowVar, tableVar)
	if err := b.Branch(PortLoop, b.Indent()+1, pre...); err != nil {
		return err
	}
	return b.Continue(PortCompleted)
}
