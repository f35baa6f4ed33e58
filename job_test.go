package sitepatch_test

import (
	"testing"

	"github.com/jacinteriors/sitepatch"
	"github.com/stretchr/testify/assert"
)

func TestJob_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		job  sitepatch.Job
		ok   bool
	}{
		{"valid", sitepatch.Job{Name: "brentwood", Source: "b.html", Target: "t.html", Recipe: "city-sections"}, true},
		{"missing name", sitepatch.Job{Source: "b.html", Target: "t.html", Recipe: "city-sections"}, false},
		{"missing source", sitepatch.Job{Name: "a", Target: "t.html", Recipe: "city-sections"}, false},
		{"missing target", sitepatch.Job{Name: "a", Source: "b.html", Recipe: "city-sections"}, false},
		{"missing recipe", sitepatch.Job{Name: "a", Source: "b.html", Target: "t.html"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.job.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, sitepatch.EINVALID, sitepatch.ErrorCode(err))
		})
	}
}

func TestReport_Counts(t *testing.T) {
	t.Parallel()

	r := &sitepatch.Report{Outcomes: []sitepatch.Outcome{
		{Job: sitepatch.Job{Name: "a"}, Status: sitepatch.StatusUpdated},
		{Job: sitepatch.Job{Name: "b"}, Status: sitepatch.StatusFailed, Reason: "anchor"},
		{Job: sitepatch.Job{Name: "c"}, Status: sitepatch.StatusSkipped},
		{Job: sitepatch.Job{Name: "d"}, Status: sitepatch.StatusUpdated},
	}}

	updated, skipped, failed := r.Counts()

	assert.Equal(t, 2, updated)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, failed)
	assert.Equal(t, "b", r.Failed()[0].Job.Name)
	assert.Len(t, r.Failed(), 1)
}
