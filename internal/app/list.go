package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/vk/vsgen/internal/registry"
)

// listKinds prints every registered kind grouped by category.
func (a *App) listKinds() error {
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tKIND\tCOMPILES AS\tDESCRIPTION")
	for _, def := range a.registry.Kinds() {
		category := def.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", category, def.Name, registry.LayoutOf(def).Kind, def.Description)
	}
	return tw.Flush()
}
