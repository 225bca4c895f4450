package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-loader/internal/mapping"
)

var (
	examplePkg     = filepath.Join("..", "..", "examples", "monsters")
	exampleMapping = filepath.Join(examplePkg, "map.yaml")
)

func TestRun_Generate(t *testing.T) {
	out := t.TempDir()

	var stdout, stderr bytes.Buffer

	err := run([]string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-mapping", exampleMapping, "-out", out}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "wrote ")

	got, err := os.ReadFile(filepath.Join(out, "records_gen.go"))
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join(examplePkg, "records_gen.go"))
	require.NoError(t, err)

	assert.Equal(t, string(want), string(got))
}

func TestRun_Check(t *testing.T) {
	out := t.TempDir()

	var stdout, stderr bytes.Buffer

	err := run([]string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-out", out, "-o", "x.go", "-check"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Empty(t, stdout.String())
	assert.NoFileExists(t, filepath.Join(out, "x.go"))
}

func TestRun_Dump(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run([]string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-dump"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "Monster")
	assert.Contains(t, stdout.String(), "Base.ID")
}

func TestRun_Suggest(t *testing.T) {
	var stdout, stderr bytes.Buffer

	table := filepath.Join(examplePkg, "data", "items.csv")

	err := run([]string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-suggest", "Item=" + table}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Empty(t, stderr.String())

	mf, err := mapping.Parse(stdout.Bytes())
	require.NoError(t, err, stdout.String())
	require.Len(t, mf.Records, 1)

	rm := mf.Records[0]
	assert.Equal(t, "monsters.Item", rm.Type)
	assert.Equal(t, "items", rm.Source)
	assert.True(t, rm.SkipHeader)
	assert.Equal(t, []mapping.ColumnMapping{
		{Index: 0, Field: "Name"},
		{Index: 1, Field: "Price"},
		{Index: 2, Field: "Stack"},
	}, rm.Columns)
}

func TestRun_SuggestPartial(t *testing.T) {
	table := filepath.Join(t.TempDir(), "bestiary.csv")
	require.NoError(t, os.WriteFile(table, []byte("ID,name,Elemnt,Comment\n1,Goblin,earth,meh\n"), 0o644))

	var stdout, stderr bytes.Buffer

	err := run([]string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-suggest", "Monster=" + table}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stderr.String(), `column 3 "Comment"`)

	mf, err := mapping.Parse(stdout.Bytes())
	require.NoError(t, err, stdout.String())
	require.Len(t, mf.Records, 1)

	assert.Equal(t, "bestiary", mf.Records[0].Source)
	assert.Equal(t, []mapping.ColumnMapping{
		{Index: 0, Field: "Base.ID"},
		{Index: 1, Field: "Name"},
		{Index: 2, Field: "Element"},
	}, mf.Records[0].Columns)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "extra args", args: []string{"-pkg", ".", "extra"}},
		{name: "missing mapping", args: []string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-mapping", "nope.yaml", "-check"}},
		{name: "missing package", args: []string{"-pkg", "./does/not/exist"}},
		{name: "suggest syntax", args: []string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-suggest", "Monster"}},
		{name: "suggest unknown type", args: []string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-suggest", "Nope=x.csv"}},
		{name: "suggest missing table", args: []string{"-pkg", "./" + filepath.ToSlash(examplePkg), "-suggest", "Item=nope.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, run(tt.args, &stdout, &stderr))
		})
	}
}
