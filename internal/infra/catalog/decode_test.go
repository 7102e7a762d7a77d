package catalog

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"tooldir/internal/domain"
)

func TestDecodeFormats(t *testing.T) {
	want := []domain.ToolPatch{
		{ID: "a", Name: strPtr("Alpha"), Tags: []string{"dns", "recon"}, HasTags: true, Trending: intPtr(7)},
		{ID: "b", Category: strPtr("Email")},
	}

	cases := []struct {
		name   string
		format Format
		data   string
	}{
		{
			name:   "json",
			format: FormatJSON,
			data:   `[{"id":"a","name":"Alpha","tags":["dns","recon"],"trending":7},{"id":"b","category":"Email","url":null}]`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			data: `
- id: a
  name: Alpha
  tags: [dns, recon]
  trending: 7
- id: b
  category: Email
`,
		},
		{
			name:   "toml",
			format: FormatTOML,
			data: `
[[tools]]
id = "a"
name = "Alpha"
tags = ["dns", "recon"]
trending = 7

[[tools]]
id = "b"
category = "Email"
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Decode([]byte(tc.data), tc.format)
			require.NoError(t, err)
			require.Empty(t, payload.Issues)
			if diff := cmp.Diff(want, payload.Patches); diff != "" {
				t.Fatalf("patches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRejectsNonListPayload(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		data   string
	}{
		{name: "json object", format: FormatJSON, data: `{"id":"a"}`},
		{name: "json scalar", format: FormatJSON, data: `42`},
		{name: "json garbage", format: FormatJSON, data: `[{"id":`},
		{name: "json trailing data", format: FormatJSON, data: `[{"id":"a"}] garbage`},
		{name: "json two documents", format: FormatJSON, data: `[] []`},
		{name: "yaml mapping", format: FormatYAML, data: "id: a\n"},
		{name: "toml without tools", format: FormatTOML, data: "id = \"a\"\n"},
		{name: "toml tools scalar", format: FormatTOML, data: "tools = 3\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data), tc.format)
			require.ErrorIs(t, err, domain.ErrImportShape)
			code, ok := domain.CodeFrom(err)
			require.True(t, ok)
			require.Equal(t, domain.CodeInvalidArgument, code)
		})
	}
}

func TestDecodeReportsRecordIssues(t *testing.T) {
	data := `[
		{"name":"NoId"},
		"not a record",
		{"id":7},
		{"id":"ok","trending":"high"},
		{"id":"tags","tags":"dns"},
		{"id":""},
		{"id":"good","trending":12.0}
	]`

	payload, err := Decode([]byte(data), FormatJSON)
	require.NoError(t, err)

	require.Equal(t, []domain.ToolPatch{{ID: "good", Trending: intPtr(12)}}, payload.Patches)

	kinds := make([]domain.ImportIssueKind, len(payload.Issues))
	indexes := make([]int, len(payload.Issues))
	for i, issue := range payload.Issues {
		kinds[i] = issue.Kind
		indexes[i] = issue.Index
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, indexes)
	require.Equal(t, []domain.ImportIssueKind{
		domain.IssueMissingID,
		domain.IssueInvalidRecord,
		domain.IssueInvalidRecord,
		domain.IssueInvalidRecord,
		domain.IssueInvalidRecord,
		domain.IssueMissingID,
	}, kinds)
	require.Equal(t, "ok", payload.Issues[3].ID)
}

func TestDecodeRejectsOutOfRangeTrending(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		data   string
	}{
		{name: "json huge float", format: FormatJSON, data: `[{"id":"a","trending":1e30}]`},
		{name: "json huge negative float", format: FormatJSON, data: `[{"id":"a","trending":-1e30}]`},
		{name: "json just past max int", format: FormatJSON, data: `[{"id":"a","trending":9223372036854775808}]`},
		{name: "yaml uint64 max", format: FormatYAML, data: "- id: a\n  trending: 18446744073709551615\n"},
		{name: "toml huge float", format: FormatTOML, data: "[[tools]]\nid = \"a\"\ntrending = 1e30\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Decode([]byte(tc.data), tc.format)
			require.NoError(t, err)
			require.Empty(t, payload.Patches)
			require.Len(t, payload.Issues, 1)
			require.Equal(t, domain.IssueInvalidRecord, payload.Issues[0].Kind)
			require.Equal(t, "a", payload.Issues[0].ID)
		})
	}

	payload, err := Decode([]byte(`[{"id":"a","trending":9223372036854775807},{"id":"b","trending":-3.6}]`), FormatJSON)
	require.NoError(t, err)
	require.Empty(t, payload.Issues)
	require.Equal(t, []domain.ToolPatch{
		{ID: "a", Trending: intPtr(math.MaxInt)},
		{ID: "b", Trending: intPtr(-4)},
	}, payload.Patches)
}

func TestDecodeThenMergeReportsSkippedRecords(t *testing.T) {
	seed := domain.SeedTools()
	c := New(seed)

	payload, err := Decode([]byte(`[{"name":"NoId"}]`), FormatJSON)
	require.NoError(t, err)
	report := c.MergeImport(payload.Patches).Merge(payload.Issues)

	require.Equal(t, 0, report.Added)
	require.Equal(t, 0, report.Updated)
	require.Equal(t, 1, report.Skipped)
	require.Equal(t, seed, c.Tools())
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"tools.json": FormatJSON,
		"tools.YAML": FormatYAML,
		"tools.yml":  FormatYAML,
		"tools.toml": FormatTOML,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("tools.csv")
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
	_, err = FormatFromPath("tools")
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: x\n  name: X\n"), 0o600))

	payload, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []domain.Tool{{ID: "x", Name: "X"}}, payload.Tools())
}
