package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/racepatch/pkg/differ"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// ModifiedRaceHeights is the output of the race pass
	ModifiedRaceHeights ModifiedRaceHeights `json:"-" yaml:"-"`

	// Changeset lists the fields the patch changes over the winning records
	Changeset *differ.Changeset `json:"changeset" yaml:"changeset"`

	// Metadata
	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ResultMetadata contains metadata about the run.
type ResultMetadata struct {
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	RunID          string  `json:"run_id" yaml:"run_id"`
	Patch          string  `json:"patch" yaml:"patch"`
	HeightSource   string  `json:"height_source" yaml:"height_source"`
	SkeletonSource string  `json:"skeleton_source" yaml:"skeleton_source"`
	Multiplier     float64 `json:"multiplier" yaml:"multiplier"`

	// DryRun indicates the patch will not be written
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	Stats ResultStatistics `json:"stats" yaml:"stats"`
}

// ResultStatistics counts what each pass did.
type ResultStatistics struct {
	RacesExamined int `json:"races_examined" yaml:"races_examined"`
	RacesPatched  int `json:"races_patched" yaml:"races_patched"`
	RacesSkipped  int `json:"races_skipped" yaml:"races_skipped"`

	CharactersExamined int `json:"characters_examined" yaml:"characters_examined"`
	CharactersDirect   int `json:"characters_direct" yaml:"characters_direct"`
	CharactersScaled   int `json:"characters_scaled" yaml:"characters_scaled"`
	CharactersSkipped  int `json:"characters_skipped" yaml:"characters_skipped"`

	TotalTimeMs int64 `json:"total_time_ms" yaml:"total_time_ms"`
}

// CharactersAdjusted returns the number of characters whose height was written.
func (s ResultStatistics) CharactersAdjusted() int {
	return s.CharactersDirect + s.CharactersScaled
}

// HasChanges returns true if the patch changes any record.
func (r *Result) HasChanges() bool {
	return r.Changeset != nil && r.Changeset.HasChanges()
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	counts := fmt.Sprintf("%d/%d races patched, %d/%d characters adjusted (%d direct, %d scaled)",
		s.RacesPatched, s.RacesExamined,
		s.CharactersAdjusted(), s.CharactersExamined, s.CharactersDirect, s.CharactersScaled)

	if r.Metadata.DryRun {
		if r.HasChanges() {
			return fmt.Sprintf("Dry run completed. %s. %s", counts, r.Changeset.String())
		}
		return "Dry run completed. No changes detected."
	}

	if r.HasChanges() {
		return fmt.Sprintf("Reconciliation successful. %s.", counts)
	}

	return "Reconciliation completed. No changes detected."
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		ModifiedRaceHeights: make(ModifiedRaceHeights),
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
