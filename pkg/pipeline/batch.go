package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/csvtable/pkg/render/table"
)

// Variant is one preset/scale/DPI combination of a batch.
type Variant struct {
	Name   string
	Preset string
	Scale  float64
	DPI    int
}

// StandardSuite returns the default batch: every preset at 1x and 96 DPI,
// then the standard and professional presets at 2x and 3x for print at
// 300 DPI.
func StandardSuite() []Variant {
	suite := make([]Variant, 0, len(table.Presets)+4)
	for _, name := range table.Presets {
		suite = append(suite, Variant{Name: "table_" + name, Preset: name, Scale: 1, DPI: 96})
	}
	for _, scale := range []float64{2, 3} {
		for _, name := range []string{table.PresetStandard, table.PresetProfessional} {
			suite = append(suite, Variant{
				Name:   fmt.Sprintf("table_%s_%gx", name, scale),
				Preset: name,
				Scale:  scale,
				DPI:    300,
			})
		}
	}
	return suite
}

// Job is a named pipeline run.
type Job struct {
	Name    string
	Options Options
}

// JobResult is the outcome of a single job. Exactly one of Result and Err is
// set.
type JobResult struct {
	Job    Job
	Result *Result
	Err    error
}

// Jobs expands variants into jobs that share base. Each job gets its own
// copy of the options.
func Jobs(base Options, variants []Variant) []Job {
	jobs := make([]Job, len(variants))
	for i, v := range variants {
		opts := base
		opts.Preset = v.Preset
		opts.Scale = v.Scale
		opts.DPI = v.DPI
		opts.Formats = append([]string(nil), base.Formats...)
		jobs[i] = Job{Name: v.Name, Options: opts}
	}
	return jobs
}

// RunBatch executes jobs concurrently with at most limit in flight
// (DefaultBatchLimit when limit <= 0). Failures are recorded per job and do
// not stop the others; results are returned in job order. The error is
// non-nil only when ctx is cancelled.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job, limit int) ([]JobResult, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	results := make([]JobResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = JobResult{Job: job, Err: err}
				return err
			}
			res, err := r.Execute(gctx, job.Options)
			results[i] = JobResult{Job: job, Result: res, Err: err}
			if err != nil {
				r.Logger.Debug("batch job failed", "job", job.Name, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
