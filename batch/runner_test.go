package batch_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jacinteriors/sitepatch"
	"github.com/jacinteriors/sitepatch/batch"
	"github.com/jacinteriors/sitepatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Runner implements sitepatch.BatchRunner at compile time.
var _ sitepatch.BatchRunner = (*batch.Runner)(nil)

// memStore is an in-memory PageStore recording writes.
type memStore struct {
	mu     sync.Mutex
	pages  map[string]string
	writes []string
}

func newMemStore(pages map[string]string) (*memStore, *mock.PageStore) {
	s := &memStore{pages: pages}
	return s, &mock.PageStore{
		ReadPageFn: func(ctx context.Context, path string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			content, ok := s.pages[path]
			if !ok {
				return "", sitepatch.Errorf(sitepatch.ENOTFOUND, "page %q not found", path)
			}
			return content, nil
		},
		WritePageFn: func(ctx context.Context, path string, content string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.pages[path] = content
			s.writes = append(s.writes, path)
			return nil
		},
	}
}

// markerPatcher replaces everything after "<!--x-->" with the replacement.
var markerPatcher = &mock.Patcher{
	PatchFn: func(doc string, start, end sitepatch.Anchor, replacement string) (string, error) {
		i := strings.Index(doc, "<!--x-->")
		if i < 0 {
			return "", sitepatch.Errorf(sitepatch.EANCHOR, "start anchor %s not found", start)
		}
		return doc[:i+len("<!--x-->")] + replacement, nil
	},
}

// textExtractor turns a non-empty source into one section.
var textExtractor = &mock.Extractor{
	ExtractFn: func(html string, strategies ...sitepatch.Strategy) ([]sitepatch.Section, error) {
		if html == "" {
			return nil, nil
		}
		return []sitepatch.Section{{Heading: "H", Items: []sitepatch.Item{sitepatch.Paragraph(html)}}}, nil
	},
}

// plainRenderer renders paragraph texts joined by "|" and images as "img:".
var plainRenderer = &mock.Renderer{
	RenderFn: func(sections []sitepatch.Section) string {
		var parts []string
		for _, s := range sections {
			for _, item := range s.Items {
				parts = append(parts, item.Text)
			}
		}
		return strings.Join(parts, "|")
	},
	RenderGalleryFn: func(images []sitepatch.GalleryImage) string {
		if len(images) == 0 {
			return ""
		}
		var parts []string
		for _, img := range images {
			parts = append(parts, "img:"+img.Filename)
		}
		return strings.Join(parts, ",")
	},
}

func newRunner(pages *mock.PageStore) *batch.Runner {
	return &batch.Runner{
		Pages:     pages,
		Extractor: textExtractor,
		Renderer:  plainRenderer,
		Patcher:   markerPatcher,
		Recipes:   sitepatch.NewRecipeRegistry(sitepatch.DefaultRecipes()...),
		Images: &mock.ImageIndex{
			FindImagesFn: func(ctx context.Context, slug string) ([]sitepatch.GalleryImage, error) {
				return []sitepatch.GalleryImage{{Filename: slug + "-1.jpg"}}, nil
			},
		},
		Concurrency: 2,
		Now:         func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) },
	}
}

func job(name, recipe string) sitepatch.Job {
	return sitepatch.Job{
		Name:   name,
		Source: "backup/" + name + ".html",
		Target: "site/" + name + ".html",
		Recipe: recipe,
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports updated, skipped and failed in job order", func(t *testing.T) {
		t.Parallel()

		// Given one good page, one empty backup, one target without anchor
		// and one missing backup
		store, pages := newMemStore(map[string]string{
			"backup/brentwood.html": "Brentwood",
			"site/brentwood.html":   "<h1>B</h1><!--x-->old",
			"backup/venice.html":    "",
			"site/venice.html":      "<!--x-->old",
			"backup/malibu.html":    "Malibu",
			"site/malibu.html":      "no anchor here",
			"site/ojai.html":        "<!--x-->old",
		})
		runner := newRunner(pages)

		// When the batch runs
		report, err := runner.Run(context.Background(), []sitepatch.Job{
			job("brentwood", sitepatch.RecipeCitySections),
			job("venice", sitepatch.RecipeCitySections),
			job("malibu", sitepatch.RecipeServiceSections),
			job("ojai", sitepatch.RecipeServiceSections),
		}, nil)

		// Then every job has an outcome in order
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 4)
		assert.NotEmpty(t, report.RunID)

		assert.Equal(t, sitepatch.StatusUpdated, report.Outcomes[0].Status)
		assert.Equal(t, 1, report.Outcomes[0].Sections)
		assert.Equal(t, 1, report.Outcomes[0].Images)
		assert.Equal(t, batch.ComputeHash("<h1>B</h1><!--x-->Brentwood\n\nimg:brentwood-1.jpg"), report.Outcomes[0].Checksum)

		assert.Equal(t, sitepatch.StatusSkipped, report.Outcomes[1].Status)
		assert.Equal(t, batch.ReasonNoContent, report.Outcomes[1].Reason)

		assert.Equal(t, sitepatch.StatusFailed, report.Outcomes[2].Status)
		assert.Contains(t, report.Outcomes[2].Reason, "patch: start anchor")

		assert.Equal(t, sitepatch.StatusFailed, report.Outcomes[3].Status)
		assert.Contains(t, report.Outcomes[3].Reason, "read source")

		// And only the updated page was written
		assert.Equal(t, []string{"site/brentwood.html"}, store.writes)
		assert.Equal(t, "<h1>B</h1><!--x-->Brentwood\n\nimg:brentwood-1.jpg", store.pages["site/brentwood.html"])
		assert.Equal(t, "no anchor here", store.pages["site/malibu.html"])

		updated, skipped, failed := report.Counts()
		assert.Equal(t, [3]int{1, 1, 2}, [3]int{updated, skipped, failed})
	})

	t.Run("second run is already up to date", func(t *testing.T) {
		t.Parallel()

		store, pages := newMemStore(map[string]string{
			"backup/malibu.html": "Malibu",
			"site/malibu.html":   "<!--x-->old",
		})
		runner := newRunner(pages)
		jobs := []sitepatch.Job{job("malibu", sitepatch.RecipeServiceSections)}

		first, err := runner.Run(context.Background(), jobs, nil)
		require.NoError(t, err)
		second, err := runner.Run(context.Background(), jobs, nil)
		require.NoError(t, err)

		assert.Equal(t, sitepatch.StatusUpdated, first.Outcomes[0].Status)
		assert.Equal(t, sitepatch.StatusSkipped, second.Outcomes[0].Status)
		assert.Equal(t, batch.ReasonUpToDate, second.Outcomes[0].Reason)
		assert.Equal(t, first.Outcomes[0].Checksum, second.Outcomes[0].Checksum)
		assert.Len(t, store.writes, 1)
		assert.NotEqual(t, first.RunID, second.RunID)
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		t.Parallel()

		store, pages := newMemStore(map[string]string{
			"backup/malibu.html": "Malibu",
			"site/malibu.html":   "<!--x-->old",
		})
		runner := newRunner(pages)
		runner.DryRun = true
		runner.Sitemap = &mock.SitemapUpdater{
			TouchFn: func(ctx context.Context, paths []string, at time.Time) (int, error) {
				t.Fatal("sitemap touched during dry run")
				return 0, nil
			},
		}

		report, err := runner.Run(context.Background(), []sitepatch.Job{job("malibu", sitepatch.RecipeServiceSections)}, nil)

		require.NoError(t, err)
		assert.True(t, report.DryRun)
		assert.Equal(t, sitepatch.StatusUpdated, report.Outcomes[0].Status)
		assert.Empty(t, store.writes)
		assert.Equal(t, "<!--x-->old", store.pages["site/malibu.html"])
	})

	t.Run("touches sitemap for updated targets", func(t *testing.T) {
		t.Parallel()

		_, pages := newMemStore(map[string]string{
			"backup/malibu.html": "Malibu",
			"site/malibu.html":   "<!--x-->old",
			"backup/venice.html": "",
			"site/venice.html":   "<!--x-->old",
		})
		runner := newRunner(pages)
		var touched []string
		var touchedAt time.Time
		runner.Sitemap = &mock.SitemapUpdater{
			TouchFn: func(ctx context.Context, paths []string, at time.Time) (int, error) {
				touched, touchedAt = paths, at
				return len(paths), nil
			},
		}

		_, err := runner.Run(context.Background(), []sitepatch.Job{
			job("malibu", sitepatch.RecipeServiceSections),
			job("venice", sitepatch.RecipeServiceSections),
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"site/malibu.html"}, touched)
		assert.Equal(t, 2026, touchedAt.Year())
	})

	t.Run("returns sitemap errors with the report", func(t *testing.T) {
		t.Parallel()

		_, pages := newMemStore(map[string]string{
			"backup/malibu.html": "Malibu",
			"site/malibu.html":   "<!--x-->old",
		})
		runner := newRunner(pages)
		runner.Sitemap = &mock.SitemapUpdater{
			TouchFn: func(ctx context.Context, paths []string, at time.Time) (int, error) {
				return 0, errors.New("bad xml")
			},
		}

		report, err := runner.Run(context.Background(), []sitepatch.Job{job("malibu", sitepatch.RecipeServiceSections)}, nil)

		require.Error(t, err)
		require.NotNil(t, report)
		assert.Equal(t, sitepatch.StatusUpdated, report.Outcomes[0].Status)
	})

	t.Run("unknown recipe and invalid job fail alone", func(t *testing.T) {
		t.Parallel()

		_, pages := newMemStore(map[string]string{
			"backup/malibu.html": "Malibu",
			"site/malibu.html":   "<!--x-->old",
		})
		runner := newRunner(pages)

		report, err := runner.Run(context.Background(), []sitepatch.Job{
			job("malibu", "nope"),
			{Name: "broken", Target: "site/broken.html", Recipe: sitepatch.RecipeCitySections},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, sitepatch.StatusFailed, report.Outcomes[0].Status)
		assert.Equal(t, `recipe: recipe "nope" not found`, report.Outcomes[0].Reason)
		assert.Equal(t, sitepatch.StatusFailed, report.Outcomes[1].Status)
		assert.Contains(t, report.Outcomes[1].Reason, "source path required")
	})

	t.Run("skips unparseable source with the parse message", func(t *testing.T) {
		t.Parallel()

		// Given an extractor that cannot parse the backup
		store, pages := newMemStore(map[string]string{
			"backup/malibu.html": "<<<",
			"site/malibu.html":   "<!--x-->old",
		})
		runner := newRunner(pages)
		runner.Extractor = &mock.Extractor{
			ExtractFn: func(html string, strategies ...sitepatch.Strategy) ([]sitepatch.Section, error) {
				return nil, sitepatch.Errorf(sitepatch.EPARSE, "failed to parse HTML: unexpected EOF")
			},
		}

		// When the batch runs
		report, err := runner.Run(context.Background(), []sitepatch.Job{job("malibu", sitepatch.RecipeServiceSections)}, nil)

		// Then the page is skipped, not failed, and nothing is written
		require.NoError(t, err)
		assert.Equal(t, sitepatch.StatusSkipped, report.Outcomes[0].Status)
		assert.Equal(t, "parse: failed to parse HTML: unexpected EOF", report.Outcomes[0].Reason)
		assert.Empty(t, report.Failed())
		assert.Empty(t, store.writes)
	})

	t.Run("fails when extractor returns an empty section", func(t *testing.T) {
		t.Parallel()

		store, pages := newMemStore(map[string]string{
			"backup/malibu.html": "Malibu",
			"site/malibu.html":   "<!--x-->old",
		})
		runner := newRunner(pages)
		runner.Extractor = &mock.Extractor{
			ExtractFn: func(html string, strategies ...sitepatch.Strategy) ([]sitepatch.Section, error) {
				return []sitepatch.Section{{Heading: "Empty"}}, nil
			},
		}

		report, err := runner.Run(context.Background(), []sitepatch.Job{job("malibu", sitepatch.RecipeServiceSections)}, nil)

		require.NoError(t, err)
		assert.Equal(t, sitepatch.StatusFailed, report.Outcomes[0].Status)
		assert.Equal(t, `extract: section "Empty" has no items`, report.Outcomes[0].Reason)
		assert.Empty(t, store.writes)
	})

	t.Run("writes when target differs by one byte", func(t *testing.T) {
		t.Parallel()

		// Given a target already holding the patched content except for one byte
		store, pages := newMemStore(map[string]string{
			"backup/malibu.html": "Malibu",
			"site/malibu.html":   "<!--x-->Malibv",
		})

		report, err := newRunner(pages).Run(context.Background(), []sitepatch.Job{job("malibu", sitepatch.RecipeServiceSections)}, nil)

		require.NoError(t, err)
		assert.Equal(t, sitepatch.StatusUpdated, report.Outcomes[0].Status)
		assert.Equal(t, batch.ComputeHash("<!--x-->Malibu"), report.Outcomes[0].Checksum)
		assert.Equal(t, []string{"site/malibu.html"}, store.writes)
	})

	t.Run("rejects duplicate targets", func(t *testing.T) {
		t.Parallel()

		_, pages := newMemStore(map[string]string{})
		a := job("a", sitepatch.RecipeCitySections)
		b := job("b", sitepatch.RecipeCitySections)
		b.Target = a.Target

		_, err := newRunner(pages).Run(context.Background(), []sitepatch.Job{a, b}, nil)

		require.Error(t, err)
		assert.Equal(t, sitepatch.EINVALID, sitepatch.ErrorCode(err))
	})

	t.Run("reports progress for every job", func(t *testing.T) {
		t.Parallel()

		_, pages := newMemStore(map[string]string{
			"backup/a.html": "A", "site/a.html": "<!--x-->",
			"backup/b.html": "B", "site/b.html": "<!--x-->",
			"backup/c.html": "C", "site/c.html": "<!--x-->",
		})
		var events []sitepatch.Progress

		_, err := newRunner(pages).Run(context.Background(), []sitepatch.Job{
			job("a", sitepatch.RecipeServiceSections),
			job("b", sitepatch.RecipeServiceSections),
			job("c", sitepatch.RecipeServiceSections),
		}, func(p sitepatch.Progress) {
			events = append(events, p)
		})

		require.NoError(t, err)
		require.Len(t, events, 3)
		for i, e := range events {
			assert.Equal(t, i+1, e.Completed)
			assert.Equal(t, 3, e.Total)
		}
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		_, pages := newMemStore(map[string]string{
			"backup/a.html": "A", "site/a.html": "<!--x-->",
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := newRunner(pages).Run(ctx, []sitepatch.Job{job("a", sitepatch.RecipeServiceSections)}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, report)
		assert.Equal(t, sitepatch.StatusFailed, report.Outcomes[0].Status)
	})
}

func TestTruncatePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short.html", batch.TruncatePath("short.html", 20))
	assert.Equal(t, "...brentwood.html", batch.TruncatePath("site/cities/brentwood.html", 17))
	assert.Equal(t, "sit", batch.TruncatePath("site", 3))
	assert.Equal(t, "", batch.TruncatePath("site", 0))
}
