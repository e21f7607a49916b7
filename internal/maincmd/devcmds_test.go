package maincmd_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/larch/internal/filetest"
	"github.com/mna/larch/internal/maincmd"
)

var updateTests = flag.Bool("test.update-tokenize-tests", false, "update the tokenize golden files")

const (
	srcDir = "testdata/in"
	outDir = "testdata/out"
)

func TestTokenizeSource_Golden(t *testing.T) {
	for _, fi := range filetest.SourceFiles(t, srcDir, ".lx") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			var stdout, stderr bytes.Buffer
			ok := maincmd.TokenizeSource(&stdout, &stderr, string(src))
			require.True(t, ok)
			assert.Empty(t, stderr.String())

			filetest.DiffOutput(t, fi, stdout.String(), outDir, updateTests)
		})
	}
}

func TestParseSource_ReportsSyntaxError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ok := maincmd.ParseSource(&stdout, &stderr, "var = 1;")
	assert.False(t, ok)
	assert.NotEmpty(t, stderr.String())
}

func TestResolveSource_ReportsUnresolvableBreak(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ok := maincmd.ResolveSource(&stdout, &stderr, "break;")
	assert.False(t, ok)
	assert.Contains(t, stderr.String(), "outside a loop")
}

func TestASTJSONSource_EmitsDocument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ok := maincmd.ASTJSONSource(&stdout, &stderr, "var x = 1;")
	require.True(t, ok)
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), `"name":"x"`)
}
