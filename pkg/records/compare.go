package records

import (
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/racepatch/pkg/constants"
)

// HeightsEqual reports whether two height multipliers differ by less than
// constants.HeightTolerance.
func HeightsEqual(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) < constants.HeightTolerance
}

// SkeletonPathsEqual compares model paths ignoring case and surrounding
// whitespace. A nil path only equals another nil path.
func SkeletonPathsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(*a)) == fold.String(strings.TrimSpace(*b))
}
