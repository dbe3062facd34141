package tagbump

import "regexp"

// Strict release remainder: exactly X.Y.Z, no decorations.
var relXYZ = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)
