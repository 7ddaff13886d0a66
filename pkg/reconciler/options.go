package reconciler

import (
	"strings"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/errors"
)

// Options configures a reconciler.
type options struct {
	heightSource   string
	skeletonSource string
	multiplier     float64
	dryRun         bool
	exactDiff      bool
}

func defaultOptions() *options {
	return &options{
		heightSource:   constants.DefaultHeightSource,
		skeletonSource: constants.DefaultSkeletonSource,
		multiplier:     constants.DefaultHeightChangeMultiplier,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithHeightSource sets the plugin that defines character heights.
func WithHeightSource(name string) Option {
	return func(o *options) error {
		if strings.TrimSpace(name) == "" {
			return &errors.ValidationError{
				Field:   "height_source",
				Message: "cannot be empty",
			}
		}
		o.heightSource = name
		return nil
	}
}

// WithSkeletonSource sets the plugin that defines race heights and skeletons.
func WithSkeletonSource(name string) Option {
	return func(o *options) error {
		if strings.TrimSpace(name) == "" {
			return &errors.ValidationError{
				Field:   "skeleton_source",
				Message: "cannot be empty",
			}
		}
		o.skeletonSource = name
		return nil
	}
}

// WithHeightChangeMultiplier sets the fraction of a character's height
// deviation applied when the character's race height was changed. Any value
// is accepted, including zero and negatives.
func WithHeightChangeMultiplier(multiplier float64) Option {
	return func(o *options) error {
		o.multiplier = multiplier
		return nil
	}
}

// WithDryRun marks results as produced by a dry run.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithExactDiff lists every height difference in the result's changeset,
// including those within the comparison tolerance. Reconciliation itself is
// unaffected.
func WithExactDiff(enabled bool) Option {
	return func(o *options) error {
		o.exactDiff = enabled
		return nil
	}
}
