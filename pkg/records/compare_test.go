package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/racepatch/pkg/records"
)

func TestHeightsEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b float32
		want bool
	}{
		{name: "identical", a: 1.0, b: 1.0, want: true},
		{name: "diff 9.9e-6 is equal", a: 1.0, b: 1.0 + 9.9e-6, want: true},
		{name: "diff 1.1e-5 is different", a: 1.0, b: 1.0 + 1.1e-5, want: false},
		{name: "negative direction", a: 1.0 + 1.1e-5, b: 1.0, want: false},
		{name: "large change", a: 1.0, b: 1.2, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, records.HeightsEqual(tc.a, tc.b))
		})
	}
}

func TestSkeletonPathsEqual(t *testing.T) {
	p := func(s string) *string { return &s }

	tests := []struct {
		name string
		a, b *string
		want bool
	}{
		{name: "both nil", want: true},
		{name: "nil vs empty", a: nil, b: p(""), want: false},
		{name: "exact", a: p(`Actors\Character\skeleton.nif`), b: p(`Actors\Character\skeleton.nif`), want: true},
		{name: "case differs", a: p(`actors\character\SKELETON.nif`), b: p(`Actors\Character\skeleton.nif`), want: true},
		{name: "whitespace differs", a: p("  skeleton.nif\t"), b: p("skeleton.nif"), want: true},
		{name: "different file", a: p("skeleton_female.nif"), b: p("skeleton.nif"), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, records.SkeletonPathsEqual(tc.a, tc.b))
			assert.Equal(t, tc.want, records.SkeletonPathsEqual(tc.b, tc.a))
		})
	}
}
