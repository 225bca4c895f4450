// Package main provides the CLI entrypoint for recordgen.
//
// recordgen reads the record types of one package and generates
// reflection-free schema builders for them:
//   - Parses the package (AST + go/types) and collects structs with csv tags
//   - Applies an optional YAML mapping file, which takes precedence over tags
//   - Writes <Type>Schema functions and RegisterSchemas next to the records
//
// With -suggest it instead reads the header line of a table and prints a
// mapping file binding each header cell to the closest matching field.
//
// Usage:
//
//	recordgen -pkg ./examples/monsters -mapping examples/monsters/map.yaml
//	recordgen -pkg ./examples/monsters -suggest Item=examples/monsters/data/items.csv
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"record-loader/internal/analyze"
	"record-loader/internal/diagnostic"
	"record-loader/internal/gen"
	"record-loader/internal/mapping"
	"record-loader/internal/match"
	"record-loader/record"
	"record-loader/source"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "recordgen:", err)
		os.Exit(1)
	}
}

type options struct {
	pkg      string
	mapping  string
	out      string
	filename string
	dump     bool
	check    bool
	suggest  string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("recordgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pkg, "pkg", ".", "package to generate schemas for")
	fs.StringVar(&opts.mapping, "mapping", "", "YAML mapping file (optional)")
	fs.StringVar(&opts.out, "out", "", "output directory (default: the package directory)")
	fs.StringVar(&opts.filename, "o", gen.DefaultGeneratorConfig().Filename, "output file name")
	fs.BoolVar(&opts.dump, "dump", false, "print the analyzed records and exit")
	fs.BoolVar(&opts.check, "check", false, "validate without writing")
	fs.StringVar(&opts.suggest, "suggest", "", "print a mapping for Type=path/to/table.csv from its header and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(opts.pkg)
	if err != nil {
		return err
	}

	if len(graph.Packages) != 1 {
		return fmt.Errorf("-pkg %s matched %d packages, want exactly one", opts.pkg, len(graph.Packages))
	}

	var pkg *analyze.PackageInfo
	for _, p := range graph.Packages {
		pkg = p
	}

	if opts.dump {
		records, diags := graph.Records(pkg.Path)
		printDiagnostics(stderr, diags)

		cfg := spew.ConfigState{Indent: "  ", MaxDepth: 5, DisablePointerAddresses: true, DisableMethods: true}
		cfg.Fdump(stdout, records)

		return nil
	}

	if opts.suggest != "" {
		return suggest(stdout, stderr, graph, pkg, opts.suggest)
	}

	var mf *mapping.MappingFile
	if opts.mapping != "" {
		mf, err = mapping.LoadFile(opts.mapping)
		if err != nil {
			return err
		}

		mapping.NormalizeMappingFile(mf)
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.Filename = opts.filename
	cfg.OutputDir = opts.out

	if cfg.OutputDir == "" {
		cfg.OutputDir = pkg.Dir
	}

	generator := gen.NewGenerator(cfg)

	file, err := generator.Generate(graph, pkg.Path, mf)
	printDiagnostics(stderr, generator.Diagnostics())

	if err != nil {
		return err
	}

	if file == nil || opts.check {
		return nil
	}

	path, err := gen.WriteFile(file, cfg.OutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "wrote", path)

	return nil
}

// suggest prints a mapping file for the table named by arg, binding the
// header cells that confidently match a field of the type.
func suggest(stdout, stderr io.Writer, graph *analyze.TypeGraph, pkg *analyze.PackageInfo, arg string) error {
	typeName, table, ok := strings.Cut(arg, "=")
	if !ok || typeName == "" || table == "" {
		return fmt.Errorf("-suggest %q: want Type=path/to/table.csv", arg)
	}

	t := graph.GetType(analyze.TypeID{PkgPath: pkg.Path, Name: typeName})
	if t == nil || t.Kind != analyze.TypeKindStruct {
		return fmt.Errorf("-suggest: %s is not a struct in %s", typeName, pkg.Path)
	}

	base := filepath.Base(table)

	text, err := source.Dir(filepath.Dir(table)).Load(base)
	if err != nil {
		return err
	}

	header := record.Header(text)
	suggestions := match.Suggest(header, analyze.Members(t), match.DefaultMinScore, match.DefaultMinGap)

	rm := mapping.RecordMapping{
		Type:       pkg.Name + "." + typeName,
		Source:     strings.TrimSuffix(base, filepath.Ext(base)),
		SkipHeader: true,
	}

	bound := make(map[int]bool, len(suggestions))
	for _, s := range suggestions {
		bound[s.Index] = true
		rm.Columns = append(rm.Columns, mapping.ColumnMapping{Index: s.Index, Field: s.Field})
	}

	for i, cell := range header {
		if !bound[i] {
			fmt.Fprintf(stderr, "warning: column %d %q matches no field of %s\n", i, cell, typeName)
		}
	}

	data, err := mapping.Marshal(&mapping.MappingFile{Version: "1", Records: []mapping.RecordMapping{rm}})
	if err != nil {
		return err
	}

	_, err = stdout.Write(data)

	return err
}

func printDiagnostics(w io.Writer, d diagnostic.Diagnostics) {
	for _, group := range [][]diagnostic.Diagnostic{d.Infos, d.Warnings, d.Errors} {
		for _, diag := range group {
			fmt.Fprintf(w, "%s: %s\n", diag.Severity, diag)
		}
	}
}
