// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package findings

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "analysis", DBFile), 20)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func result(file string, matches map[types.Category][]string) *types.ExtractionResult {
	r := &types.ExtractionResult{File: file, Matches: matches}
	for _, c := range types.AllCategories {
		if _, ok := matches[c]; ok {
			r.Categories = append(r.Categories, c)
		}
	}
	return r
}

func runMeta(id string, at time.Time) types.RunMeta {
	return types.RunMeta{RunID: id, Root: "docs", Title: types.DefaultReportTitle, GeneratedAt: at}
}

var (
	firstRun  = runMeta("01HRUNA", time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	secondRun = runMeta("01HRUNB", time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC))
)

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	failed := result("docs/broken.pdf", map[types.Category][]string{types.CategoryAPIs: {}})
	failed.Error = "extraction failed"

	n, err := s.IngestRun(ctx, firstRun, []*types.ExtractionResult{
		result("docs/claims.pdf", map[types.Category][]string{
			types.CategoryAPIs:       {"API: /v1/claims"},
			types.CategoryDataModels: {"CLCL_CLAIM"},
		}),
		result("docs/notes.txt", map[types.Category][]string{
			types.CategoryPainPoints:    {"Eligibility checks are slow."},
			types.CategoryOpportunities: {"Automation of eligibility checks."},
		}),
		failed,
		nil,
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)

	n, err = s.IngestRun(ctx, secondRun, []*types.ExtractionResult{
		result("docs/notes.txt", map[types.Category][]string{
			types.CategoryPainPoints: {"Provider updates are difficult."},
		}),
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	s := testStore(t)
	assert.FileExists(t, s.Path())
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)
	s, err := NewStore(path, 0)
	require.NoError(t, err)
	seed(t, s)
	require.NoError(t, s.Close())

	s, err = NewStore(path, 0)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", DBFile), DBPath(types.IndexConfig{}, "out"))
	assert.Equal(t, "/tmp/x.db", DBPath(types.IndexConfig{Path: "/tmp/x.db"}, "out"))
}

func TestIngestRun_EmptyRunID(t *testing.T) {
	s := testStore(t)
	_, err := s.IngestRun(context.Background(), types.RunMeta{}, nil)
	assert.Error(t, err)
}

func TestIngestRun_ReplacesRun(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	ctx := context.Background()

	n, err := s.IngestRun(ctx, firstRun, []*types.ExtractionResult{
		result("docs/new.md", map[types.Category][]string{
			types.CategoryOpportunities: {"Streamline intake."},
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Search(ctx, QueryOptions{RunID: firstRun.RunID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Streamline intake.", got[0].Content)
}

func TestRuns(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, secondRun.RunID, runs[0].ID)
	assert.Equal(t, 1, runs[0].Findings)
	assert.Equal(t, firstRun.RunID, runs[1].ID)
	assert.Equal(t, 4, runs[1].Findings)
	assert.Equal(t, "docs", runs[1].Root)
	assert.True(t, firstRun.GeneratedAt.Equal(runs[1].GeneratedAt))
}

func TestSearch(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	ctx := context.Background()

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"all in insertion order", QueryOptions{}, []string{
			"API: /v1/claims", "CLCL_CLAIM", "Eligibility checks are slow.",
			"Automation of eligibility checks.", "Provider updates are difficult.",
		}},
		{"category", QueryOptions{Category: types.CategoryPainPoints}, []string{
			"Eligibility checks are slow.", "Provider updates are difficult.",
		}},
		{"run", QueryOptions{RunID: secondRun.RunID}, []string{"Provider updates are difficult."}},
		{"file", QueryOptions{File: "docs/claims.pdf"}, []string{"API: /v1/claims", "CLCL_CLAIM"}},
		{"limit", QueryOptions{MaxResults: 2}, []string{"API: /v1/claims", "CLCL_CLAIM"}},
		{"text", QueryOptions{Query: "provider"}, []string{"Provider updates are difficult."}},
		{"text and category", QueryOptions{Query: "eligibility", Category: types.CategoryOpportunities}, []string{
			"Automation of eligibility checks.",
		}},
		{"no match", QueryOptions{Query: "premium"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Search(ctx, tc.opts)
			require.NoError(t, err)
			var contents []string
			for _, f := range got {
				contents = append(contents, f.Content)
			}
			assert.Equal(t, tc.want, contents)
		})
	}
}

func TestSearch_FieldsPopulated(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	got, err := s.Search(context.Background(), QueryOptions{Category: types.CategoryDataModels})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Finding{
		RunID:    firstRun.RunID,
		File:     "docs/claims.pdf",
		Category: types.CategoryDataModels,
		Content:  "CLCL_CLAIM",
	}, got[0])
}

func TestQueryOptions_IsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{File: "a"}.IsEmpty())
}

func TestExport(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	ctx := context.Background()

	path, err := s.ExportJSON(ctx, QueryOptions{RunID: firstRun.RunID})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(s.Path()), ExportJSONFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var fromJSON []Finding
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Len(t, fromJSON, 4)

	path, err = s.ExportYAML(ctx, QueryOptions{})
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	var fromYAML []Finding
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML, 5)
	assert.Equal(t, types.CategoryAPIs, fromYAML[0].Category)
}

func TestExport_Empty(t *testing.T) {
	s := testStore(t)
	path, err := s.ExportJSON(context.Background(), QueryOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSearch_QuerySyntaxIsLiteral(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.IngestRun(ctx, firstRun, []*types.ExtractionResult{
		result("docs/intake.txt", map[types.Category][]string{
			types.CategoryPainPoints: {
				"Re-keying is error-prone.",
				"Manual review is time-consuming.",
				"Check prior_auth flags.",
				"Check priorXauth flags.",
				"Quote \"as is\" here.",
			},
		}),
	})
	require.NoError(t, err)

	tests := []struct {
		query string
		want  []string
	}{
		{"error-prone", []string{"Re-keying is error-prone."}},
		{"time-consuming", []string{"Manual review is time-consuming."}},
		{"prior_auth", []string{"Check prior_auth flags."}},
		{`"as`, []string{"Quote \"as is\" here."}},
		{"100%", nil},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got, err := s.Search(ctx, QueryOptions{Query: tc.query})
			require.NoError(t, err)
			var contents []string
			for _, f := range got {
				contents = append(contents, f.Content)
			}
			assert.Equal(t, tc.want, contents)
		})
	}
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"error-prone"`, ftsQuery("error-prone"))
	assert.Equal(t, `"claims" "time-consuming"`, ftsQuery("  claims   time-consuming "))
	assert.Equal(t, `"say" """hi"""`, ftsQuery(`say "hi"`))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%prior\_auth%`, likePattern("prior_auth"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}
