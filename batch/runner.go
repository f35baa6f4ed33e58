// Package batch regenerates site pages from backup pages. Each job reads a
// backup page, extracts its sections, renders them and splices the result
// into the target page between the recipe's anchors.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jacinteriors/sitepatch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Outcome reasons for skipped jobs. Unparseable sources are skipped with
// "parse: " and the parser's message.
const (
	ReasonNoContent = "no content"
	ReasonUpToDate  = "already up to date"
)

// Ensure Runner implements sitepatch.BatchRunner at compile time.
var _ sitepatch.BatchRunner = (*Runner)(nil)

// Runner processes jobs with bounded parallelism.
type Runner struct {
	Pages     sitepatch.PageStore
	Extractor sitepatch.Extractor
	Renderer  sitepatch.Renderer
	Patcher   sitepatch.Patcher
	Recipes   *sitepatch.RecipeRegistry

	// Images is consulted for recipes with a gallery. Optional.
	Images sitepatch.ImageIndex

	// Sitemap receives the targets of updated jobs after the run. Optional.
	Sitemap sitepatch.SitemapUpdater

	Concurrency int

	// DryRun computes outcomes without writing pages or the sitemap.
	DryRun bool

	// Now returns the run time. Defaults to time.Now.
	Now func() time.Time
}

// jobResult holds the outcome of processing a single job.
type jobResult struct {
	position int
	outcome  sitepatch.Outcome
}

// Run processes jobs and returns their outcomes in job order. A failing job
// never stops the others. Run returns an error only for duplicate targets,
// a sitemap failure, or cancellation.
func (r *Runner) Run(ctx context.Context, jobs []sitepatch.Job, progress sitepatch.ProgressFunc) (*sitepatch.Report, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}

	seen := make(map[string]string, len(jobs))
	for _, job := range jobs {
		if other, ok := seen[job.Target]; ok && job.Target != "" {
			return nil, sitepatch.Errorf(sitepatch.EINVALID, "jobs %q and %q share target %q", other, job.Name, job.Target)
		}
		seen[job.Target] = job.Name
	}

	report := &sitepatch.Report{
		RunID:     uuid.New().String(),
		StartedAt: now(),
		DryRun:    r.DryRun,
		Outcomes:  make([]sitepatch.Outcome, len(jobs)),
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan jobResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, job := range jobs {
			g.Go(func() error {
				resultCh <- jobResult{position: i, outcome: r.process(gctx, job)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	total := len(jobs)
	for result := range resultCh {
		report.Outcomes[result.position] = result.outcome
		n := completed.Add(1)
		if progress != nil {
			progress(sitepatch.Progress{
				Outcome:   result.outcome,
				Completed: int(n),
				Total:     total,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	if r.Sitemap != nil && !r.DryRun {
		var updated []string
		for _, o := range report.Outcomes {
			if o.Status == sitepatch.StatusUpdated {
				updated = append(updated, o.Job.Target)
			}
		}
		if len(updated) > 0 {
			if _, err := r.Sitemap.Touch(ctx, updated, report.StartedAt); err != nil {
				report.FinishedAt = now()
				return report, fmt.Errorf("sitemap: %w", err)
			}
		}
	}

	report.FinishedAt = now()
	return report, nil
}

// process runs the pipeline for one job. A source that cannot be parsed is
// skipped; any other failure becomes a failed outcome carrying the error
// message.
func (r *Runner) process(ctx context.Context, job sitepatch.Job) sitepatch.Outcome {
	out := sitepatch.Outcome{Job: job}
	fail := func(step string, err error) sitepatch.Outcome {
		out.Status = sitepatch.StatusFailed
		out.Reason = step + ": " + reason(err)
		return out
	}

	if err := ctx.Err(); err != nil {
		return fail("canceled", err)
	}
	if err := job.Validate(); err != nil {
		return fail("job", err)
	}

	recipe, err := r.Recipes.Get(job.Recipe)
	if err != nil {
		return fail("recipe", err)
	}

	source, err := r.Pages.ReadPage(ctx, job.Source)
	if err != nil {
		return fail("read source", err)
	}

	sections, err := r.Extractor.Extract(source, recipe.Strategies...)
	if sitepatch.ErrorCode(err) == sitepatch.EPARSE {
		out.Status = sitepatch.StatusSkipped
		out.Reason = "parse: " + sitepatch.ErrorMessage(err)
		return out
	} else if err != nil {
		return fail("extract", err)
	}
	for i := range sections {
		if err := sections[i].Validate(); err != nil {
			return fail("extract", err)
		}
	}
	out.Sections = len(sections)
	if len(sections) == 0 {
		out.Status = sitepatch.StatusSkipped
		out.Reason = ReasonNoContent
		return out
	}

	var images []sitepatch.GalleryImage
	if recipe.Gallery && r.Images != nil {
		images, err = r.Images.FindImages(ctx, job.Name)
		if err != nil {
			return fail("images", err)
		}
	}
	out.Images = len(images)

	target, err := r.Pages.ReadPage(ctx, job.Target)
	if err != nil {
		return fail("read target", err)
	}

	patched, err := r.Patcher.Patch(target, recipe.Start, recipe.End, sitepatch.RenderPage(r.Renderer, sections, images))
	if err != nil {
		return fail("patch", err)
	}

	out.Checksum = ComputeHash(patched)
	if patched == target {
		out.Status = sitepatch.StatusSkipped
		out.Reason = ReasonUpToDate
		return out
	}

	if !r.DryRun {
		if err := r.Pages.WritePage(ctx, job.Target, patched); err != nil {
			return fail("write target", err)
		}
	}
	out.Status = sitepatch.StatusUpdated
	return out
}

// reason returns a one-line description of err: the message of an
// application error, or the error text otherwise.
func reason(err error) string {
	if sitepatch.ErrorCode(err) != sitepatch.EINTERNAL {
		return sitepatch.ErrorMessage(err)
	}
	return err.Error()
}
