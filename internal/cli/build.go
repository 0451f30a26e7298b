package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/doctest/internal/config"
	"github.com/mvp-joe/doctest/internal/example"
	"github.com/mvp-joe/doctest/internal/pipeline"
	"github.com/mvp-joe/doctest/internal/render"
)

var (
	buildOut      string
	buildTemplate string
	buildLang     string
	buildQuiet    bool
)

// buildCmd renders the documentation examples under a root into the test
// file and its source map.
var buildCmd = &cobra.Command{
	Use:   "build [root]",
	Short: "Extract examples and generate the test file with its source map",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		return runBuild(cmd.Context(), root)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output file ('-' for stdout; default from config)")
	buildCmd.Flags().StringVar(&buildTemplate, "template", "", "custom render template file")
	buildCmd.Flags().StringVar(&buildLang, "lang", "", "only keep examples with this language tag")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(ctx context.Context, root string) error {
	cfg, err := config.Load(root, cfgFile)
	if err != nil {
		return err
	}
	applyBuildFlags(cfg)

	opts, err := pipelineOptions(root, cfg)
	if err != nil {
		return err
	}
	opts.Progress = progressReporter(buildQuiet)

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}
	if !buildQuiet {
		fmt.Fprintf(os.Stderr, "\n%d examples from %d files\n", len(result.Examples), result.Files)
	}
	return writeOutputs(cfg, result)
}

func applyBuildFlags(cfg *config.Config) {
	if buildOut != "" {
		cfg.Output.File = buildOut
	}
	if buildTemplate != "" {
		cfg.Render.Template = buildTemplate
	}
}

// pipelineOptions assembles pipeline options from configuration and flags.
func pipelineOptions(root string, cfg *config.Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		Root:             root,
		SourcePatterns:   cfg.Paths.Source,
		MarkdownPatterns: cfg.Paths.Markdown,
		IgnorePatterns:   cfg.Paths.Ignore,
		OutFile:          filepath.Base(cfg.Output.File),
	}

	if cfg.Render.Template != "" {
		text, err := os.ReadFile(cfg.Render.Template)
		if err != nil {
			return opts, fmt.Errorf("reading template: %w", err)
		}
		fn, err := render.Template(string(text))
		if err != nil {
			return opts, err
		}
		opts.Renderer = fn
	}

	if buildLang != "" {
		lang := buildLang
		opts.Filter = func(ex example.Example) bool { return ex.Language == lang }
	}
	return opts, nil
}

func progressReporter(quiet bool) func(done, total int) {
	if quiet {
		return nil
	}
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Extracting examples"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
			)
		}
		_ = bar.Set(done)
	}
}

// writeOutputs writes the rendered file and its map, appending the
// sourceMappingURL trailer when configured. "-" prints to stdout without a
// map file.
func writeOutputs(cfg *config.Config, result *pipeline.Result) error {
	if cfg.Output.File == "-" {
		_, err := fmt.Print(result.Output)
		return err
	}

	mapPath := cfg.Output.File + ".map"
	output := result.Output
	if cfg.Output.MappingURL {
		output = render.AppendMappingURL(output, filepath.Base(mapPath))
	}

	if dir := filepath.Dir(cfg.Output.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(cfg.Output.File, []byte(output), 0o644); err != nil {
		return err
	}

	data, err := result.SourceMap.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(mapPath, data, 0o644)
}
