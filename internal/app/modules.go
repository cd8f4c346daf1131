package app

import (
	"github.com/Otacon/emesene/internal/extension"
	"github.com/Otacon/emesene/modules/notification"
	"github.com/Otacon/emesene/modules/sound"
	"github.com/Otacon/emesene/modules/theme"
)

// coreModules is the definitive list of all extension modules that are
// compiled into the emesene binary.
var coreModules = []extension.Module{
	&sound.Module{},
	&notification.Module{},
	&theme.Module{},
}
