package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

// TestJobsRequest_Validation_Valid tests valid job board requests.
func TestJobsRequest_Validation_Valid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  JobsRequest
	}{
		{
			name: "empty request",
			req:  JobsRequest{},
		},
		{
			name: "full request",
			req: JobsRequest{
				PageRequest:       PageRequest{Page: 2, PageSize: 50},
				Position:          "engineer",
				Categories:        "backend,devops",
				Location:          "germany",
				Level:             "Senior",
				OpenForBrazilians: "true",
				SponsorsVisa:      "false",
				Search:            "golang remote",
			},
		},
		{
			name: "cursor mode",
			req:  JobsRequest{Cursor: "job-042", PageRequest: PageRequest{PageSize: 10}},
		},
		{
			name: "max page size",
			req:  JobsRequest{PageRequest: PageRequest{Page: 1, PageSize: 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(&tt.req))
		})
	}
}

// TestJobsRequest_Validation_Invalid tests invalid job board requests.
func TestJobsRequest_Validation_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name        string
		req         JobsRequest
		expectField string
		expectTag   string
	}{
		{
			name:        "negative page",
			req:         JobsRequest{PageRequest: PageRequest{Page: -1, PageSize: 10}},
			expectField: "Page",
			expectTag:   "min",
		},
		{
			name:        "page size too large",
			req:         JobsRequest{PageRequest: PageRequest{Page: 1, PageSize: 101}},
			expectField: "PageSize",
			expectTag:   "max",
		},
		{
			name:        "boolean filter with junk value",
			req:         JobsRequest{OpenForBrazilians: "yes"},
			expectField: "OpenForBrazilians",
			expectTag:   "oneof",
		},
		{
			name:        "search too long",
			req:         JobsRequest{Search: string(make([]byte, 201))},
			expectField: "Search",
			expectTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			require.Error(t, err)

			validationErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "expected ValidationErrors type")

			found := false
			for _, ve := range validationErrs {
				if ve.Field == tt.expectField {
					found = true
					assert.Equal(t, tt.expectTag, ve.Tag)
				}
			}
			assert.True(t, found, "expected error for field %s", tt.expectField)
		})
	}
}

// TestJobsRequest_ToFilters tests conversion to domain filters.
func TestJobsRequest_ToFilters(t *testing.T) {
	req := JobsRequest{
		Position:          "engineer",
		Categories:        "backend, devops, ",
		Location:          "berlin",
		Level:             "Senior",
		SearchCategory:    "tech",
		OpenForBrazilians: "true",
		SponsorsVisa:      "false",
		Search:            "golang",
	}

	filters := req.ToFilters()

	assert.Equal(t, "engineer", filters.Position)
	assert.Equal(t, []string{"backend", "devops"}, filters.Categories, "CSV is trimmed and empties dropped")
	assert.Equal(t, "berlin", filters.Location)
	assert.Equal(t, "Senior", filters.Level)
	assert.Equal(t, "tech", filters.SearchCategory)
	require.NotNil(t, filters.OpenForBrazilians)
	assert.True(t, *filters.OpenForBrazilians)
	require.NotNil(t, filters.SponsorsVisa)
	assert.False(t, *filters.SponsorsVisa)
	assert.Equal(t, "golang", filters.Search)
}

// TestJobsRequest_ToFilters_TriState verifies absent booleans impose no
// constraint.
func TestJobsRequest_ToFilters_TriState(t *testing.T) {
	filters := (&JobsRequest{}).ToFilters()

	assert.Nil(t, filters.OpenForBrazilians)
	assert.Nil(t, filters.SponsorsVisa)
	assert.Nil(t, filters.Categories)
}

// TestPostsRequest_ToFilters tests blog filter conversion.
func TestPostsRequest_ToFilters(t *testing.T) {
	req := PostsRequest{
		Tags:   "carreira,visto",
		Author: "ana",
		Search: "entrevista",
	}

	filters := req.ToFilters()
	assert.Equal(t, domain.PostFilters{
		Tags:   []string{"carreira", "visto"},
		Author: "ana",
		Search: "entrevista",
	}, filters)
}

// TestQARequest_ToFilters tests Q&A filter conversion.
func TestQARequest_ToFilters(t *testing.T) {
	req := QARequest{Tags: "europa", Search: "visto"}

	filters := req.ToFilters()
	assert.Equal(t, domain.QAFilters{Tags: []string{"europa"}, Search: "visto"}, filters)
}

// TestPreviewRequest_Validation tests the preview endpoint parameters.
func TestPreviewRequest_Validation(t *testing.T) {
	v := newTestValidator()

	valid := PreviewRequest{Collection: "resume-reviews"}
	assert.NoError(t, v.Validate(&valid))

	missing := PreviewRequest{}
	assert.Error(t, v.Validate(&missing))

	malformed := PreviewRequest{Collection: "Not A Slug"}
	assert.Error(t, v.Validate(&malformed))
}

// TestPageRequest_ToPageParams tests pagination parameter passthrough.
func TestPageRequest_ToPageParams(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 20}
	assert.Equal(t, domain.PageParams{Page: 3, PageSize: 20}, req.ToPageParams())

	// Zero values pass through; bound correction happens in the domain
	assert.Equal(t, domain.PageParams{}, (&PageRequest{}).ToPageParams())
}

// TestSplitCSV covers the comma-separated list helper.
func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Nil(t, splitCSV(" , ,"))
	assert.Equal(t, []string{"one"}, splitCSV("one"))
	assert.Equal(t, []string{"one", "two"}, splitCSV(" one , two "))
}
