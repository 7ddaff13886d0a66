package differ

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithExactHeights reports every height difference instead of only those
// beyond the reconciliation tolerance.
func WithExactHeights(enabled bool) Option {
	return func(d *differ) {
		d.exactHeights = enabled
	}
}
