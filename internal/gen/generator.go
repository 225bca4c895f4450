package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"record-loader/internal/analyze"
	"record-loader/internal/diagnostic"
	"record-loader/internal/mapping"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the generated file.
	Filename string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments enables generation of doc comments.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         "records_gen.go",
		GenerateComments: true,
	}
}

// Generator generates schema builder code for the record types of a package.
type Generator struct {
	config GeneratorConfig
	graph  *analyze.TypeGraph
	diags  diagnostic.Diagnostics
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "records_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Diagnostics returns the diagnostics of the last Generate call.
func (g *Generator) Diagnostics() diagnostic.Diagnostics {
	return g.diags
}

// Generate renders one file binding every record type of pkgPath. Records
// come from csv tags; a record listed in mf takes its columns from mf instead.
// mf may be nil. Invalid input is reported through Diagnostics and an error.
func (g *Generator) Generate(graph *analyze.TypeGraph, pkgPath string, mf *mapping.MappingFile) (*GeneratedFile, error) {
	g.graph = graph
	g.diags = diagnostic.Diagnostics{}

	records := g.collectRecords(pkgPath, mf)
	if g.diags.HasErrors() {
		return nil, fmt.Errorf("invalid records in %s: %w", pkgPath, g.diags.Error())
	}

	if len(records) == 0 {
		g.diags.AddWarning(diagnostic.CodeNoColumns, "no record types found", pkgPath, "")
		return nil, nil
	}

	data := g.buildTemplateData(pkgPath, records)

	var buf bytes.Buffer
	if err := recordsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	// Format the generated code
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}
		// Return unformatted code for debugging
		return &GeneratedFile{
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

// Template for the records file

var recordsTemplate = template.Must(template.New("records").Parse(`// Code generated by recordgen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Records}}
{{if $.GenerateComments}}// {{.FunctionName}} binds the columns of {{.TypeName}}.
{{end}}func {{.FunctionName}}(r *convert.Registry) (*schema.Schema[{{.TypeName}}], error) {
	b := schema.NewBuilder[{{.TypeName}}](r)
{{range .Columns}}
	schema.{{.Builder}}(b, {{.Index}}, {{printf "%q" .Member}}, func(rec *{{.RecordType}}) *{{.FieldType}} { return &rec.{{.Member}} }{{if .HasDefault}}, {{printf "%q" .Default}}{{end}}){{end}}

	return b.Build()
}
{{if .HasTable}}
{{if $.GenerateComments}}// {{.TypeName}} table location, from the mapping file.
{{end}}const (
	{{.TypeName}}Source     = {{printf "%q" .Source}}
	{{.TypeName}}SkipHeader = {{.SkipHeader}}
)
{{end}}{{end}}
{{if .GenerateComments}}// RegisterSchemas binds every record type of the package and installs the
// schemas into b.
{{end}}func RegisterSchemas(b *schema.Binder) error {
{{range .Records}}	{
		s, err := {{.FunctionName}}(b.Registry())
		if err != nil {
			return err
		}

		schema.Register(b, s)
	}
{{end}}
	return nil
}
`))
