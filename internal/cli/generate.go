package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	autofixture "github.com/goliatone/go-autofixture"
	"github.com/goliatone/go-autofixture/internal/config"
	"github.com/goliatone/go-autofixture/internal/logging"
	"github.com/goliatone/go-autofixture/pkg/fixture"
	"github.com/goliatone/go-autofixture/pkg/jsonschema"
	pkgopenapi "github.com/goliatone/go-autofixture/pkg/openapi"
	"github.com/goliatone/go-autofixture/pkg/random"
	"github.com/goliatone/go-autofixture/pkg/render"
	rendertemplate "github.com/goliatone/go-autofixture/pkg/render/template"
	"github.com/goliatone/go-autofixture/pkg/render/template/pongo"
	"github.com/goliatone/go-autofixture/pkg/source"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

const httpTimeout = 30 * time.Second

type generateFlags struct {
	file        string
	openapi     string
	jsonschema  string
	schema      string
	count       int
	seed        int64
	format      string
	template    string
	interactive bool
	output      string
}

// input is the template and specs a run generates from.
type input struct {
	template map[string]any
	specs    spec.Map
	count    int
	origin   string
}

func newGenerateCommand(opts Options) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate records from a definition file, an OpenAPI schema or a JSON Schema",
		Example: `  autofixture generate --file pet.yaml --count 5
  autofixture generate --openapi petstore.yaml --schema Pet --format yaml --seed 42
  autofixture generate --jsonschema pet.schema.json --count 2
  autofixture generate --file pet.yaml --format html --template pets.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "fixture definition file (JSON or YAML)")
	f.StringVar(&flags.openapi, "openapi", "", "OpenAPI document path or http(s) URL")
	f.StringVar(&flags.jsonschema, "jsonschema", "", "JSON Schema document path or http(s) URL (JSON or YAML)")
	f.StringVar(&flags.schema, "schema", "", "component schema name for --openapi, or a $defs name for --jsonschema")
	f.IntVarP(&flags.count, "count", "n", 0, "number of records (default from the definition or AUTOFIXTURE_COUNT)")
	f.Int64Var(&flags.seed, "seed", 0, "seed for reproducible output (default from AUTOFIXTURE_SEED, else random)")
	f.StringVar(&flags.format, "format", "", "output format: json, yaml, template, html (default from AUTOFIXTURE_FORMAT)")
	f.StringVar(&flags.template, "template", "", "template file for the template and html formats")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for a spec per field before generating")
	f.StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")

	cmd.MarkFlagsMutuallyExclusive("file", "openapi", "jsonschema")
	cmd.MarkFlagsOneRequired("file", "openapi", "jsonschema")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts Options, flags *generateFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	in, err := loadInput(ctx, flags)
	if err != nil {
		return err
	}

	count := cfg.Count
	if in.count > 0 {
		count = in.count
	}
	if cmd.Flags().Changed("count") {
		if flags.count <= 0 {
			return fmt.Errorf("--count must be positive, got %d", flags.count)
		}
		count = flags.count
	}

	if flags.interactive {
		driver := opts.Prompt
		if driver == nil {
			driver = NewSurveyDriver()
		}
		in.specs, err = PromptSpecs(ctx, driver, in.template, in.specs)
		if err != nil {
			return err
		}
	}

	seed, err := resolveSeed(cmd, cfg, flags)
	if err != nil {
		return err
	}
	logger.Info("generating fixtures", "source", in.origin, "count", count, "seed", seed)

	builder := fixture.NewBuilder(fixture.WithSeed(seed), fixture.WithLogger(logger))
	records, err := builder.CreateMany(in.template, count, in.specs)
	if err != nil {
		return err
	}

	format := cfg.Format
	if cmd.Flags().Changed("format") {
		format = flags.format
	}
	payload, err := renderRecords(ctx, format, flags.template, records)
	if err != nil {
		return err
	}
	if flags.interactive && flags.output != "" {
		if err := confirmOverwrite(ctx, opts.Prompt, flags.output); err != nil {
			return err
		}
	}
	return writeOutput(cmd.OutOrStdout(), flags.output, payload, logger)
}

// confirmOverwrite asks before replacing an existing output file. Declining
// aborts the run.
func confirmOverwrite(ctx context.Context, driver PromptDriver, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if driver == nil {
		driver = NewSurveyDriver()
	}
	ok, err := driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Overwrite %s?", path),
		Help:    "the file exists and will be replaced with the generated fixtures",
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	raw := cfg.LogLevel
	if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
		raw = flag.Value.String()
	}
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level), nil
}

func loadInput(ctx context.Context, flags *generateFlags) (input, error) {
	switch {
	case flags.file != "":
		if flags.schema != "" {
			return input{}, errors.New("--schema cannot be used with --file")
		}
		def, err := source.LoadFile(ctx, flags.file)
		if err != nil {
			return input{}, err
		}
		return input{template: def.Template, specs: def.Specs, count: def.Count, origin: def.Source}, nil
	case flags.jsonschema != "":
		return loadJSONSchema(ctx, flags)
	case flags.schema == "":
		return input{}, errors.New("--openapi requires --schema")
	}

	src, loader, err := openSource(flags.openapi)
	if err != nil {
		return input{}, err
	}
	template, specs, err := autofixture.TemplateFromOpenAPI(ctx, loader, autofixture.NewParser(), src, flags.schema)
	if err != nil {
		return input{}, err
	}
	return input{template: template, specs: specs, origin: flags.openapi + "#" + flags.schema}, nil
}

// openSource turns a path or http(s) URL into a source and a loader able to
// read it.
func openSource(location string) (pkgopenapi.Source, pkgopenapi.Loader, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		src, err := pkgopenapi.ParseURLSource(location)
		if err != nil {
			return nil, nil, err
		}
		return src, autofixture.NewLoader(pkgopenapi.WithHTTPFallback(httpTimeout)), nil
	}
	return pkgopenapi.SourceFromFile(location), autofixture.NewLoader(), nil
}

func loadJSONSchema(ctx context.Context, flags *generateFlags) (input, error) {
	src, loader, err := openSource(flags.jsonschema)
	if err != nil {
		return input{}, err
	}
	doc, err := jsonschema.Load(ctx, loader, src)
	if err != nil {
		return input{}, err
	}
	template, specs, err := doc.Template(flags.schema)
	if err != nil {
		return input{}, err
	}
	origin := flags.jsonschema
	if flags.schema != "" {
		origin += "#" + flags.schema
	}
	return input{template: template, specs: specs, origin: origin}, nil
}

func resolveSeed(cmd *cobra.Command, cfg config.Config, flags *generateFlags) (int64, error) {
	switch {
	case cmd.Flags().Changed("seed"):
		return flags.seed, nil
	case cfg.Seed != nil:
		return *cfg.Seed, nil
	default:
		return random.NewSeed()
	}
}

func renderRecords(ctx context.Context, format, templatePath string, records []*fixture.Record) ([]byte, error) {
	registry := render.NewDefaultRegistry()
	engine, err := pongo.New()
	if err != nil {
		return nil, err
	}
	if err := rendertemplate.Register(registry, engine); err != nil {
		return nil, err
	}

	var options render.RenderOptions
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "template", "html":
		if templatePath == "" {
			return nil, fmt.Errorf("--template is required for format %q", format)
		}
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		options.Template = string(data)
	}
	return registry.Render(ctx, format, records, options)
}

func writeOutput(stdout io.Writer, path string, payload []byte, logger *slog.Logger) error {
	if path == "" {
		_, err := stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("fixtures written", "path", path, "bytes", len(payload))
	return nil
}

// IsAborted reports whether err came from the user cancelling a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
