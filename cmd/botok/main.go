// botok segments Tibetan texts into words and prints the tokens.
//
// Usage:
//
//	botok [-config profile.yaml] [-split-affixes=false] [-format text|tagged|debug] [-parquet out.parquet] [files...]
//
// Without files, the text is read from the standard input. A .env file in the current directory is loaded
// before the BOTOK_* environment variables are applied to the configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gomlx/go-botok/tokenizers"
	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/gomlx/go-botok/tokenizers/export"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagConfig       = flag.String("config", "", "YAML profile of the tokenizer. Defaults to the embedded sample dictionary.")
	flagSplitAffixes = flag.Bool("split-affixes", true, "Split affixed words into host and affix tokens. Overrides the profile if set.")
	flagFormat       = flag.String("format", "tagged", "Output format: text, tagged or debug.")
	flagParquet      = flag.String("parquet", "", "If set, also write the tokens to this Parquet file.")
	flagCacheDir     = flag.String("cache-dir", "", "Directory of compiled tries. Overrides the profile and $BOTOK_CACHE_DIR if set.")
	flagRebuild      = flag.Bool("rebuild", false, "Compile the trie from the dictionaries even if it is cached.")
)

// cliOptions are the settings of one run, parsed from the flags.
type cliOptions struct {
	config      *tokenizers.Config
	format      export.Format
	parquetPath string
	files       []string
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		klog.Warningf("failed to load .env: %v", err)
	}

	opts, err := parseOptions()
	if err != nil {
		klog.Exitf("%+v", err)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		klog.Exitf("%+v", err)
	}
}

// parseOptions reads the flags, the profile and the environment.
func parseOptions() (*cliOptions, error) {
	opts := &cliOptions{
		parquetPath: *flagParquet,
		files:       flag.Args(),
	}
	var err error
	if *flagConfig != "" {
		if opts.config, err = tokenizers.LoadConfig(*flagConfig); err != nil {
			return nil, err
		}
	} else {
		opts.config = tokenizers.DefaultConfig()
	}
	if err = opts.config.ApplyEnv(); err != nil {
		return nil, err
	}

	// Flags explicitly set take precedence.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "split-affixes":
			opts.config.SplitAffixes = *flagSplitAffixes
		case "cache-dir":
			opts.config.CacheDir = *flagCacheDir
		case "rebuild":
			opts.config.Rebuild = *flagRebuild
		}
	})

	if opts.format, err = export.ParseFormat(*flagFormat); err != nil {
		return nil, err
	}
	return opts, nil
}

// run tokenizes the input files (or stdin if there are none) and renders the tokens to stdout.
func run(ctx context.Context, opts *cliOptions, stdin io.Reader, stdout io.Writer) error {
	tok, err := tokenizers.New(ctx, opts.config)
	if err != nil {
		return err
	}

	type input struct {
		name string
		read func() ([]byte, error)
	}
	var inputs []input
	if len(opts.files) == 0 {
		inputs = append(inputs, input{"-", func() ([]byte, error) { return io.ReadAll(stdin) }})
	}
	for _, name := range opts.files {
		inputs = append(inputs, input{name, func() ([]byte, error) { return os.ReadFile(name) }})
	}

	var rows []export.Row
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := in.read()
		if err != nil {
			return errors.Wrapf(err, "failed to read %q", in.name)
		}
		var tokens []api.Token
		if tokens, err = tok.Tokenize(string(content)); err != nil {
			return errors.WithMessagef(err, "while tokenizing %q", in.name)
		}
		klog.V(1).Infof("%s: %d tokens", in.name, len(tokens))
		if len(inputs) > 1 {
			if _, err := fmt.Fprintf(stdout, "==> %s <==\n", in.name); err != nil {
				return errors.Wrap(err, "failed to write output")
			}
		}
		if err := export.Render(stdout, tokens, export.Options{Format: opts.format}); err != nil {
			return err
		}
		if opts.parquetPath != "" {
			rows = append(rows, export.NewRows(in.name, tokens)...)
		}
	}

	if opts.parquetPath != "" {
		if err := export.WriteParquet(opts.parquetPath, rows); err != nil {
			return err
		}
		klog.V(1).Infof("wrote %d tokens to %q", len(rows), opts.parquetPath)
	}
	return nil
}
