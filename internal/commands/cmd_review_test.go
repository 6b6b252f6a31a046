package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docent/internal/assist"
	"github.com/colonyops/docent/internal/core/config"
	"github.com/colonyops/docent/internal/core/walkthrough"
	"github.com/colonyops/docent/internal/diffsrc"
)

const sampleDiff = `diff --git a/cmd/main.go b/cmd/main.go
--- a/cmd/main.go
+++ b/cmd/main.go
@@ -1,2 +1,3 @@
 package main
+// entry point
 func main() {}
diff --git a/docs/README.md b/docs/README.md
--- a/docs/README.md
+++ b/docs/README.md
@@ -1 +1 @@
-old
+new
`

func writeDiff(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "changes.diff")
	require.NoError(t, os.WriteFile(path, []byte(sampleDiff), 0o644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	return &cfg
}

func TestPrepare_Mock(t *testing.T) {
	cmd := &ReviewCmd{flags: &Flags{}, mock: true}

	p, err := cmd.prepare(testConfig(t), "", nil, true)
	require.NoError(t, err)

	assert.Equal(t, mockSource, p.source)
	assert.Equal(t, 5, p.walkthrough.Len())
	assert.IsType(t, &assist.Mock{}, p.client)
}

func TestPrepare_NoAI(t *testing.T) {
	cmd := &ReviewCmd{flags: &Flags{}, noAI: true}
	path := writeDiff(t)

	p, err := cmd.prepare(testConfig(t), path, nil, true)
	require.NoError(t, err)

	assert.Equal(t, path, p.source)
	assert.Nil(t, p.client)
	require.Equal(t, 2, p.walkthrough.Len())
	assert.Equal(t, "cmd/main.go", p.walkthrough.Step(0).Title)
	assert.Equal(t, "docs/README.md", p.walkthrough.Step(1).Title)
}

func TestPrepare_ProviderNone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assistant.Provider = config.ProviderNone

	cmd := &ReviewCmd{flags: &Flags{}}
	p, err := cmd.prepare(cfg, "-", strings.NewReader(sampleDiff), false)
	require.NoError(t, err)

	assert.Equal(t, "stdin", p.source)
	assert.Nil(t, p.client)
	assert.Equal(t, 2, p.walkthrough.Len())
}

func TestPrepare_AssistantGeneratesInUI(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assistant.Provider = config.ProviderOllama
	cfg.Assistant.BaseURL = "http://127.0.0.1:1"

	cmd := &ReviewCmd{flags: &Flags{}}
	p, err := cmd.prepare(cfg, writeDiff(t), nil, true)
	require.NoError(t, err)

	assert.Nil(t, p.walkthrough)
	require.NotNil(t, p.generate)
	require.NotNil(t, p.fallback)
	assert.IsType(t, &assist.LLM{}, p.client)
	assert.Equal(t, "Generating walkthrough for 2 hunks...", p.status)

	wt, err := p.fallback(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, wt.Len())
}

func TestPrepare_Filters(t *testing.T) {
	cfg := testConfig(t)
	cfg.Diff.Exclude = []string{"*.md"}

	cmd := &ReviewCmd{flags: &Flags{}, noAI: true}
	p, err := cmd.prepare(cfg, writeDiff(t), nil, true)
	require.NoError(t, err)
	require.Equal(t, 1, p.walkthrough.Len())
	assert.Equal(t, "cmd/main.go", p.walkthrough.Step(0).Title)

	cmd.include = []string{"*.rs"}
	_, err = cmd.prepare(cfg, writeDiff(t), nil, true)
	assert.ErrorIs(t, err, diffsrc.ErrNoMatches)
}

func TestPrepare_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		stdin   string
		tty     bool
		include []string
		wantErr error
	}{
		{name: "no input", tty: true, wantErr: diffsrc.ErrNoInput},
		{name: "empty stdin", stdin: "  \n", wantErr: diffsrc.ErrEmptyDiff},
		{name: "bad glob", include: []string{"[a"}, tty: true},
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.diff"), tty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &ReviewCmd{flags: &Flags{}, noAI: true, include: tt.include}
			_, err := cmd.prepare(testConfig(t), tt.path, strings.NewReader(tt.stdin), tt.tty)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// failingClient fails walkthrough generation with err.
type failingClient struct {
	assist.Mock
	err error
}

func (f *failingClient) Generate(context.Context, []walkthrough.Hunk) (*walkthrough.Walkthrough, error) {
	return nil, f.err
}

func TestGenerate_WrapsErrors(t *testing.T) {
	hunks, err := diffsrc.Parse(sampleDiff)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = generate(context.Background(), &failingClient{err: boom}, hunks)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "generate walkthrough")

	_, err = generate(context.Background(), &failingClient{err: context.Canceled}, hunks)
	assert.Equal(t, context.Canceled, err)

	wt, err := generate(context.Background(), assist.NewMock(), hunks)
	require.NoError(t, err)
	assert.Equal(t, 5, wt.Len())
}

func TestExportFeedback(t *testing.T) {
	var copied []string
	orig := copyToClipboard
	t.Cleanup(func() { copyToClipboard = orig })

	copyToClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	var buf bytes.Buffer
	exportFeedback(&buf, "")
	assert.Empty(t, buf.String())
	assert.Empty(t, copied)

	exportFeedback(&buf, "Comments: 1\n")
	assert.Equal(t, "Comments: 1\n\nFeedback copied to clipboard.\n", buf.String())
	assert.Equal(t, []string{"Comments: 1\n"}, copied)

	buf.Reset()
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	exportFeedback(&buf, "Comments: 1\n")
	assert.Equal(t, "Comments: 1\n", buf.String())
}
