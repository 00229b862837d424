package app

import (
	"github.com/vk/vsgen/internal/registry"
	"github.com/vk/vsgen/modules/filesystem"
	"github.com/vk/vsgen/modules/stdlib"
	"github.com/vk/vsgen/modules/table"
)

// coreModules is the definitive list of all modules that are compiled into
// the vsgen binary.
var coreModules = []registry.Module{
	&stdlib.Module{},
	&table.Module{},
	&filesystem.Module{},
}
