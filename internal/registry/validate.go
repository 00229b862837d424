package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/vsgen/internal/ctxlog"
	"github.com/vk/vsgen/internal/graph"
)

// ValidateRegistry performs a parity check between manifests and Go generators. Every
// custom-code kind needs a registered generator; generators without a kind and
// unrecognized control names are only reported.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	used := make(map[string]bool)
	for _, def := range r.Kinds() {
		switch {
		case def.Generator != "":
			used[def.Generator] = true
			if _, ok := r.generators[def.Generator]; !ok {
				errs = append(errs, fmt.Sprintf("kind '%s': generator '%s' is not registered", def.Name, def.Generator))
			}
		case def.Control != "":
			if _, ok := graph.ParseControlVariant(def.Control); !ok {
				logger.Warn("Kind uses an unknown control variant; nodes of this kind will fail to compile.", "kind", def.Name, "control", def.Control)
			}
		}
	}

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !used[name] {
			logger.Debug("Generator is not referenced by any kind.", "generator", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
