package app

import (
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/modules/delay"
	"github.com/vk/taskgrid/modules/env_vars"
	"github.com/vk/taskgrid/modules/http_request"
	"github.com/vk/taskgrid/modules/print"
)

// coreModules are the built-in task types registered when the caller does
// not provide an explicit module list.
var coreModules = []registry.Module{
	&delay.Module{},
	&env_vars.Module{},
	&http_request.Module{},
	&print.Module{},
}
