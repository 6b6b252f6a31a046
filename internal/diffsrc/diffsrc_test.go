package diffsrc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

const twoFiles = `diff --git a/src/a.go b/src/a.go
index 1111111..2222222 100644
--- a/src/a.go
+++ b/src/a.go
@@ -1,2 +1,3 @@ package a
+// File A
 func a() {}
 func a2() {}
@@ -10,3 +11,2 @@ func a2() {}
 func c() {}
-func d() {}
 func e() {}
diff --git a/src/b_test.go b/src/b_test.go
deleted file mode 100644
index 3333333..0000000
--- a/src/b_test.go
+++ /dev/null
@@ -1,2 +0,0 @@
-package b
-func TestB() {}
`

func TestParse(t *testing.T) {
	hunks, err := Parse(twoFiles)
	require.NoError(t, err)
	require.Len(t, hunks, 3)

	assert.Equal(t, walkthrough.Hunk{
		FilePath:  "src/a.go",
		StartLine: 1,
		EndLine:   3,
		Content:   "@@ -1,2 +1,3 @@ package a\n+// File A\n func a() {}\n func a2() {}\n",
	}, hunks[0])

	assert.Equal(t, 11, hunks[1].StartLine)
	assert.Equal(t, 12, hunks[1].EndLine)
	assert.True(t, strings.HasPrefix(hunks[1].Content, "@@ -10,3 +11,2 @@"))

	assert.Equal(t, "src/b_test.go", hunks[2].FilePath)
	assert.Equal(t, 1, hunks[2].StartLine, "deleted files clamp to line 1")
	assert.Equal(t, 1, hunks[2].EndLine)

	for _, h := range hunks {
		assert.NoError(t, h.Validate())
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("  \n")
	require.ErrorIs(t, err, ErrEmptyDiff)

	_, err = Parse("just some text\nwithout a diff\n")
	require.ErrorIs(t, err, ErrNoHunks)
}

func TestFormatForPrompt(t *testing.T) {
	hunks, err := Parse(twoFiles)
	require.NoError(t, err)

	out := FormatForPrompt(hunks[:2])
	assert.True(t, strings.HasPrefix(out, "=== Hunk 1 (src/a.go, lines 1-3) ===\n@@ -1,2 +1,3 @@"))
	assert.Contains(t, out, "\n\n=== Hunk 2 (src/a.go, lines 11-12) ===\n")
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		path    string
		want    bool
	}{
		{name: "empty matches all", path: "src/main.go", want: true},
		{name: "include base name", include: []string{"*.go"}, path: "src/main.go", want: true},
		{name: "include miss", include: []string{"*.go"}, path: "main.rs", want: false},
		{name: "exclude dir", exclude: []string{"test/*"}, path: "test/main_test.go", want: false},
		{name: "exclude keeps others", exclude: []string{"test/*"}, path: "src/main.go", want: true},
		{name: "combined", include: []string{"*.go"}, exclude: []string{"*_test.go"}, path: "pkg/a_test.go", want: false},
		{name: "doublestar", include: []string{"internal/**"}, path: "internal/core/x.go", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Matches(tt.path))
		})
	}
}

func TestFilter_InvalidPattern(t *testing.T) {
	_, err := NewFilter([]string{"[invalid"}, nil)
	assert.Error(t, err)
}

func TestFilter_Apply(t *testing.T) {
	hunks, err := Parse(twoFiles)
	require.NoError(t, err)

	f, err := NewFilter(nil, []string{"*_test.go"})
	require.NoError(t, err)
	got, err := f.Apply(hunks)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	f, err = NewFilter([]string{"*.rs"}, nil)
	require.NoError(t, err)
	_, err = f.Apply(hunks)
	assert.ErrorIs(t, err, ErrNoMatches)
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "change.diff")
	require.NoError(t, os.WriteFile(path, []byte(twoFiles), 0o644))

	in, err := Read(path, nil, true)
	require.NoError(t, err)
	assert.Equal(t, path, in.Name)

	in, err = Read("", strings.NewReader("piped"), false)
	require.NoError(t, err)
	assert.Equal(t, Input{Name: "stdin", Text: "piped"}, in)

	_, err = Read("", strings.NewReader("ignored"), true)
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = Read(filepath.Join(t.TempDir(), "missing.diff"), nil, true)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	f, err := NewFilter([]string{"src/a.go"}, nil)
	require.NoError(t, err)

	in, hunks, err := Load("-", strings.NewReader(twoFiles), false, f)
	require.NoError(t, err)
	assert.Equal(t, "stdin", in.Name)
	assert.Len(t, hunks, 2)

	_, _, err = Load("-", strings.NewReader(""), false, Filter{})
	assert.ErrorIs(t, err, ErrEmptyDiff)
}

func TestFallback(t *testing.T) {
	hunks, err := Parse(twoFiles)
	require.NoError(t, err)

	wt, err := Fallback(hunks)
	require.NoError(t, err)
	require.Equal(t, 2, wt.Len())

	first := wt.Step(0)
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "src/a.go", first.Title)
	assert.Len(t, first.Hunks, 2)
	assert.Equal(t, "2 hunks in `src/a.go`: **+1 -1** lines.", first.Summary)

	second := wt.Step(1)
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, "1 hunk in `src/b_test.go`: **+0 -2** lines.", second.Summary)
}

func TestFallback_NoHunks(t *testing.T) {
	_, err := Fallback(nil)
	assert.ErrorIs(t, err, walkthrough.ErrNoSteps)
}
