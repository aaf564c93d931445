package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/gomlx/go-botok/tokenizers"
	"github.com/gomlx/go-botok/tokenizers/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Stdin(t *testing.T) {
	opts := &cliOptions{config: tokenizers.DefaultConfig(), format: export.FormatText}
	var out bytes.Buffer
	err := run(context.Background(), opts, strings.NewReader(" ཤི་བཀྲ་ཤིས་  tr བདེ་་ལེ གས། བཀྲ་ཤིས་བདེ་ལེགས་ཀཀ"), &out)
	require.NoError(t, err)
	assert.Equal(t, "ཤི་ བཀྲ་ཤིས་ བདེ་ལེགས་ བཀྲ་ཤིས་ བདེ་ལེགས་ ཀཀ་\n", ansi.Strip(out.String()))
}

func TestRun_FilesAndParquet(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("བཀྲ་ཤིས།"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("ཤི་"), 0o644))
	parquetPath := filepath.Join(dir, "tokens.parquet")

	opts := &cliOptions{
		config:      tokenizers.DefaultConfig(),
		format:      export.FormatTagged,
		parquetPath: parquetPath,
		files:       []string{first, second},
	}
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, strings.NewReader(""), &out))
	want := "==> " + first + " <==\n\"བཀྲ་ཤིས\"/NOUN\n\"།\"/punct\n" +
		"==> " + second + " <==\n\"ཤི་\"/VERB\n"
	assert.Equal(t, want, ansi.Strip(out.String()))

	rows, err := export.ReadParquet(parquetPath)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, first, rows[0].Doc)
	assert.Equal(t, second, rows[2].Doc)
	assert.Equal(t, 0, rows[2].Index)

	opts.files = []string{filepath.Join(dir, "missing.txt")}
	assert.Error(t, run(context.Background(), opts, strings.NewReader(""), &out))
}
