package plugin

import "errors"

// ErrUnknownPlugin is returned by ByName for names without a plugin.
var ErrUnknownPlugin = errors.New("unknown plugin")
