package generate

import (
	"context"
	stderrors "errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/regions/internal/config"
	"github.com/vango-dev/regions/internal/errors"
	"github.com/vango-dev/regions/internal/prompt"
)

// Preset holds answers given before any prompt runs (flags, environment).
// Empty fields are asked for.
type Preset struct {
	Strategy    string
	Fields      string
	FieldsFile  string
	Validator   string
	ExamplePath string
}

var strategyDescriptions = []string{
	"Server data via Load - recommended, no layout shift",
	"Generated Use wrapper called from the page - simple",
	"Fragment built in the page - full page context and reactivity",
}

var validatorDescriptions = []string{
	"No runtime validation, typed struct only",
	"OpenAPI schema (kin-openapi)",
	"cty type (go-cty)",
}

// Ask completes a Request. Answers come from preset first, then from the
// config defaults, then from d. A nil driver makes every missing answer an
// error.
func Ask(ctx context.Context, d prompt.Driver, cfg *config.Config, name Name, preset Preset) (Request, error) {
	req := Request{Name: name}

	strategy, err := askStrategy(ctx, d, firstNonEmpty(preset.Strategy, cfg.Defaults.Strategy))
	if err != nil {
		return Request{}, err
	}
	req.Strategy = strategy

	if strategy != StrategySnippet {
		if req.Fields, err = askFields(ctx, d, preset); err != nil {
			return Request{}, err
		}
		v, err := askValidator(ctx, d, firstNonEmpty(preset.Validator, cfg.Defaults.Validator))
		if err != nil {
			return Request{}, err
		}
		req.Validator = v
	}

	if req.ExamplePath, err = askExamplePath(ctx, d, cfg, name, strategy, preset.ExamplePath); err != nil {
		return Request{}, err
	}
	return req, nil
}

func askStrategy(ctx context.Context, d prompt.Driver, preset string) (Strategy, error) {
	if preset != "" {
		return ParseStrategy(preset)
	}
	if d == nil {
		return "", missing("strategy", "--strategy")
	}
	options := make([]string, len(Strategies))
	for i, s := range Strategies {
		options[i] = string(s)
	}
	i, err := d.Select(ctx, prompt.SelectConfig{
		Message:      "What strategy would you like to use?",
		Options:      options,
		Descriptions: strategyDescriptions,
	})
	if err != nil {
		return "", promptErr(err)
	}
	return Strategies[i], nil
}

func askValidator(ctx context.Context, d prompt.Driver, preset string) (Validator, error) {
	if preset != "" {
		return ParseValidator(preset)
	}
	if d == nil {
		return "", missing("validator", "--validator")
	}
	options := make([]string, len(Validators))
	for i, v := range Validators {
		options[i] = string(v)
	}
	i, err := d.Select(ctx, prompt.SelectConfig{
		Message:      "Which validator would you like to use?",
		Options:      options,
		Descriptions: validatorDescriptions,
	})
	if err != nil {
		return "", promptErr(err)
	}
	return Validators[i], nil
}

func askFields(ctx context.Context, d prompt.Driver, preset Preset) ([]Field, error) {
	switch {
	case preset.FieldsFile != "":
		return LoadFieldsFile(preset.FieldsFile)
	case preset.Fields != "":
		return ParseFields(preset.Fields)
	case d == nil:
		return nil, missing("fields", "--fields or --fields-file")
	}

	input, err := d.Input(ctx, prompt.InputConfig{
		Message: "What fields should this region have? (comma-separated)",
		Help:    "For example: title, description, imageUrl",
		Validator: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("at least one field is required")
			}
			return nil
		},
	})
	if err != nil {
		return nil, promptErr(err)
	}

	var fields []Field
	for _, raw := range strings.Split(input, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		f := Field{Name: name}

		i, err := d.Select(ctx, prompt.SelectConfig{
			Message: fmt.Sprintf("Type for %q?", name),
			Options: typeNames(FieldTypes),
		})
		if err != nil {
			return nil, promptErr(err)
		}
		f.Type = FieldTypes[i]

		if f.Type == TypeArray {
			i, err := d.Select(ctx, prompt.SelectConfig{
				Message: fmt.Sprintf("%q is an array. What type are the items?", name),
				Options: typeNames(ItemTypes),
			})
			if err != nil {
				return nil, promptErr(err)
			}
			f.ItemType = ItemTypes[i]
		}

		required, err := d.Confirm(ctx, prompt.ConfirmConfig{
			Message: fmt.Sprintf("Is %q required?", name),
			Default: true,
		})
		if err != nil {
			return nil, promptErr(err)
		}
		f.Optional = !required
		fields = append(fields, f)
	}
	return normalizeFields(fields)
}

func askExamplePath(ctx context.Context, d prompt.Driver, cfg *config.Config, name Name, strategy Strategy, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	def := DefaultExamplePath(cfg, name)
	if d == nil {
		return def, nil
	}

	label := map[Strategy]string{
		StrategyLoadFunction:  "load function",
		StrategyPageComponent: "wrapper component",
		StrategySnippet:       "snippet",
	}[strategy]
	routes := path.Clean(filepath.ToSlash(cfg.Paths.Routes))

	p, err := d.Input(ctx, prompt.InputConfig{
		Message: fmt.Sprintf("Where should we generate the %s example?", label),
		Default: def,
		Validator: func(s string) error {
			s = path.Clean(filepath.ToSlash(strings.TrimSpace(s)))
			if s == "" || s == "." {
				return fmt.Errorf("path is required")
			}
			if s != routes && !strings.HasPrefix(s, routes+"/") {
				return fmt.Errorf("path must be inside %s/", routes)
			}
			return nil
		},
	})
	if err != nil {
		return "", promptErr(err)
	}
	return strings.TrimSpace(p), nil
}

func typeNames(types []FieldType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func missing(what, flag string) error {
	return errors.New("R307").
		WithDetailf("%s was not given and prompts are disabled", what).
		WithSuggestion("Pass " + flag)
}

func promptErr(err error) error {
	if stderrors.Is(err, prompt.ErrAborted) {
		return errors.New("R307").Wrap(err)
	}
	return errors.New("R307").WithDetail("prompt failed").Wrap(err)
}
