package app

import (
	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/kinds/bucket"
	"github.com/vk/stackforge/kinds/certificate"
	"github.com/vk/stackforge/kinds/function"
	"github.com/vk/stackforge/kinds/queue"
	"github.com/vk/stackforge/kinds/table"
	"github.com/vk/stackforge/kinds/topic"
)

// coreKinds is the definitive list of all resource kinds that are compiled
// into the stackforge binary.
var coreKinds = []kind.Registrar{
	&bucket.Module{},
	&certificate.Module{},
	&function.Module{},
	&queue.Module{},
	&table.Module{},
	&topic.Module{},
}
