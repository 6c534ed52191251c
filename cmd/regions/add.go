package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vango-dev/regions/internal/config"
	"github.com/vango-dev/regions/internal/generate"
	"github.com/vango-dev/regions/internal/prompt"
)

// Environment variables that pre-answer prompts. A .env file in the
// project directory is read too; the process environment wins.
const (
	envStrategy    = "REGIONS_STRATEGY"
	envFields      = "REGIONS_FIELDS"
	envValidator   = "REGIONS_VALIDATOR"
	envExamplePath = "REGIONS_EXAMPLE_PATH"
)

type addOptions struct {
	dir        string
	strategy   string
	fields     string
	fieldsFile string
	validator  string
	path       string
	noInput    bool
}

func addCmd() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add <region-name>",
		Short: "Generate a region",
		Long: `Generate the files for a new layout region.

Names may be camelCase or kebab-case; "pageHeader" and "page-header"
produce the same region.

Answers missing from flags are read from REGIONS_STRATEGY,
REGIONS_FIELDS, REGIONS_VALIDATOR and REGIONS_EXAMPLE_PATH (or a .env
file), then from regions.json defaults, and finally asked for.

Examples:
  regions add pageHeader
  regions add sidebar --strategy=snippet
  regions add hero --strategy=load-function --fields="title, imageUrl?, tags:[]string" --validator=openapi
  regions add footer --fields-file=footer.yaml --no-input`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var d prompt.Driver
			if !opts.noInput {
				d = prompt.Survey()
			}
			return runAdd(ctx, cmd.OutOrStdout(), d, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.dir, "dir", ".", "Project directory")
	f.StringVar(&opts.strategy, "strategy", "", "load-function, page-component or snippet")
	f.StringVar(&opts.fields, "fields", "", `Fields as "name:type?" list or JSON array`)
	f.StringVar(&opts.fieldsFile, "fields-file", "", "YAML or JSON file with field definitions")
	f.StringVar(&opts.validator, "validator", "", "none, openapi or cty")
	f.StringVar(&opts.path, "path", "", "Example route directory")
	f.BoolVar(&opts.noInput, "no-input", false, "Never prompt; fail on missing answers")
	cmd.MarkFlagsMutuallyExclusive("fields", "fields-file")

	return cmd
}

func runAdd(ctx context.Context, out io.Writer, d prompt.Driver, raw string, opts addOptions) error {
	name, err := generate.NormalizeName(raw)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.dir)
	if err != nil {
		return err
	}

	env, err := readDotenv(opts.dir)
	if err != nil {
		return err
	}
	preset := generate.Preset{
		Strategy:    firstSet(opts.strategy, lookup(env, envStrategy)),
		Fields:      firstSet(opts.fields, lookup(env, envFields)),
		FieldsFile:  opts.fieldsFile,
		Validator:   firstSet(opts.validator, lookup(env, envValidator)),
		ExamplePath: firstSet(opts.path, lookup(env, envExamplePath)),
	}

	req, err := generate.Ask(ctx, d, cfg, name, preset)
	if err != nil {
		return err
	}

	res, err := generate.New(cfg).Generate(req)
	if res != nil {
		for _, f := range res.Files {
			success(out, "Created %s", f)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	success(out, "Region %q is ready (%s)", name.Camel, req.Strategy)
	fmt.Fprintln(out)
	info(out, "Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, res.NextSteps)
	return nil
}

// readDotenv reads dir/.env without touching the process environment.
func readDotenv(dir string) (map[string]string, error) {
	env, err := godotenv.Read(filepath.Join(dir, ".env"))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return env, nil
}

func lookup(env map[string]string, key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return env[key]
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
