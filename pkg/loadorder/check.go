package loadorder

import (
	"fmt"

	"github.com/agentstation/racepatch/pkg/errors"
)

// Check verifies that every required plugin is listed, present and enabled,
// and that it loads before patch when patch is itself in the load order.
// The first failing plugin is reported as a *errors.PreconditionError.
func (lo *LoadOrder) Check(patch string, required ...string) error {
	patchPos := lo.Position(patch)

	for _, name := range required {
		l, ok := lo.Listing(name)
		switch {
		case !ok:
			return errors.NewPreconditionError(name, "is not in the load order")
		case !l.Present():
			return errors.NewPreconditionError(name, "is listed in the load order but its file is missing")
		case !l.Enabled:
			return errors.NewPreconditionError(name, "is not activated in the load order")
		}

		if patchPos >= 0 && lo.Position(name) > patchPos {
			return errors.NewPreconditionError(name, fmt.Sprintf("must load before %s", patch))
		}
	}
	return nil
}
