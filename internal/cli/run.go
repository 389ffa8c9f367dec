package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/AppleEcosystem/ipa-metadata/internal/ipa"
)

type config struct {
	file      string
	multiple  bool
	directory string
	outfile   string
	pretty    bool
	sort      bool
	noIcons   bool
	iconDir   string
	keyBy     string
	jobs      int
	progress  bool
	verbose   bool
	version   bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	name := "ipa-metadata"
	if len(args) > 0 {
		args = args[1:]
	}

	var cfg config
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s (--file FILE | --multiple [--directory DIR]) [flags]\n\n", name)
		fmt.Fprintln(stderr, "Extracts app metadata and the app icon from IPA files and prints JSON.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.file, "file", "", "IPA `file` to parse")
	fs.StringVar(&cfg.file, "f", "", "shorthand for --file")
	fs.BoolVar(&cfg.multiple, "multiple", false, "process all IPA files in --directory")
	fs.BoolVar(&cfg.multiple, "m", false, "shorthand for --multiple")
	fs.StringVar(&cfg.directory, "directory", ".", "`dir` containing IPA files (multiple mode)")
	fs.StringVar(&cfg.directory, "d", ".", "shorthand for --directory")
	fs.StringVar(&cfg.outfile, "outfile", "", "write JSON to `file` instead of stdout")
	fs.StringVar(&cfg.outfile, "o", "", "shorthand for --outfile")
	fs.BoolVar(&cfg.pretty, "pretty", false, "pretty-print JSON output")
	fs.BoolVar(&cfg.pretty, "p", false, "shorthand for --pretty")
	fs.BoolVar(&cfg.sort, "sort", false, "sort JSON keys")
	fs.BoolVar(&cfg.sort, "s", false, "shorthand for --sort")
	fs.BoolVar(&cfg.noIcons, "no-icons", false, "disable icon extraction")
	fs.StringVar(&cfg.iconDir, "icon-dir", "icons", "`dir` to save extracted icons")
	fs.StringVar(&cfg.keyBy, "key-by", "", "key multiple results by `filename|bundleid`")
	fs.IntVar(&cfg.jobs, "jobs", 0, "number of archives parsed in parallel (default: CPU count)")
	fs.IntVar(&cfg.jobs, "j", 0, "shorthand for --jobs")
	fs.BoolVar(&cfg.progress, "progress", false, "show a progress bar in multiple mode")
	fs.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.verbose, "v", false, "shorthand for --verbose")
	fs.BoolVar(&cfg.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return config{}, errors.New("unexpected arguments")
	}
	return cfg, nil
}

func newLogger(stderr io.Writer, verbose bool) *log.Logger {
	logger := log.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: true})
	logger.SetLevel(log.InfoLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		return 1
	}
	if cfg.version {
		Version(stdout)
		return 0
	}

	logger := newLogger(stderr, cfg.verbose)
	if err := run(cfg, stdout, stderr, logger); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(cfg config, stdout, stderr io.Writer, logger *log.Logger) error {
	keyBy, err := ipa.ParseKeyStrategy(cfg.keyBy)
	if err != nil {
		return err
	}

	opts := ipa.DefaultOptions()
	opts.ExtractIcons = !cfg.noIcons
	opts.IconDir = cfg.iconDir
	opts.KeyBy = keyBy
	opts.Logger = logger
	if cfg.jobs > 0 {
		opts.Jobs = cfg.jobs
	}
	render := ipa.RenderOptions{Pretty: cfg.pretty, Sort: cfg.sort}

	var output string
	if cfg.multiple {
		files, err := ipa.FindFiles(cfg.directory)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return errors.Errorf("no IPA files found in %s", cfg.directory)
		}
		logger.Infof("Found %d IPA file(s), processing...", len(files))
		if cfg.progress {
			opts.Progress = stderr
		}

		results := ipa.ParseFiles(files, opts)
		if keyBy != ipa.KeyNone {
			output = ipa.RenderJSONKeyed(results, keyBy, render)
		} else {
			infos := make([]ipa.Info, 0, len(results))
			for _, res := range results {
				infos = append(infos, res.Info)
			}
			output = ipa.RenderJSON(infos, render)
		}
	} else {
		if cfg.file == "" {
			return errors.New("either --file or --multiple must be specified")
		}
		if _, err := os.Stat(cfg.file); err != nil {
			return errors.Errorf("file not found: %s", cfg.file)
		}
		info, err := ipa.ParseFile(cfg.file, opts)
		if err != nil {
			return errors.Wrapf(err, "parse %s", cfg.file)
		}
		output = ipa.RenderInfo(info, render)
	}

	if cfg.outfile != "" {
		if err := os.WriteFile(cfg.outfile, []byte(output), 0o644); err != nil {
			return errors.Wrap(err, "write output")
		}
		logger.Infof("Output written to %s", cfg.outfile)
		return nil
	}
	_, err = fmt.Fprintln(stdout, output)
	return err
}
