package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivemoreminix/qsyntax/pkg/grammars"
	"github.com/fivemoreminix/qsyntax/pkg/syntax"
	"github.com/fivemoreminix/qsyntax/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	configPath string
	syntaxName string
	dump       bool
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "qsyntax [file]",
		Short: "Syntax highlighting editor",
		Long: `qsyntax opens a file in a terminal editor with syntax highlighting.
With --dump, the highlighting of every line is printed instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return run(cmd.OutOrStdout(), path, opts)
		},
	}

	opts.addFlags(cmd.Flags())
	cmd.AddCommand(newLanguagesCmd())
	return cmd
}

func (o *options) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configPath, "config", "c", "", "Path to the config file (default $XDG_CONFIG_HOME/qsyntax/config.yaml)")
	flags.StringVarP(&o.syntaxName, "syntax", "s", "", "Highlight as this language instead of detecting it from the file name")
	flags.BoolVar(&o.dump, "dump", false, "Print the highlighting of every line and exit")
	flags.StringVar(&o.logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")
	flags.StringVar(&o.logFile, "log-file", "", "Write logs to this file (default stderr when dumping, discarded in the editor)")
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the built-in languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, lang := range grammars.AllLanguages() {
				names := append(append([]string{}, lang.Extensions...), lang.Filenames...)
				fmt.Fprintf(w, "%-12s %s\n", lang.Name, strings.Join(names, " "))
			}
		},
	}
}

// newLogger logs to logFile, or to fallback if it is empty.
func newLogger(level, logFile string, fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid --log-level")
	}
	logger.SetLevel(lvl)

	if logFile == "" {
		logger.SetOutput(fallback)
		return logger, io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening log file")
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// selectDefinition returns the definition named by syntaxName, or the one
// detected from path. It returns nil for plain text.
func selectDefinition(repo *syntax.Repository, path, syntaxName string) (*syntax.Definition, error) {
	var entry *grammars.LangEntry
	if syntaxName != "" {
		if entry = grammars.LanguageByName(syntaxName); entry == nil {
			return nil, errors.Errorf("unknown language %q", syntaxName)
		}
	} else if path != "" {
		entry = grammars.DetectLanguage(path)
	}
	if entry == nil {
		return nil, nil
	}
	return repo.DefinitionForName(entry.Name), nil
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return []byte{}, nil
	}
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []byte{}, nil // A new file, created on save
	}
	return contents, errors.Wrap(err, "opening file")
}

func run(stdout io.Writer, path string, opts options) error {
	fallback := io.Discard // Logging to stderr would corrupt the screen
	if opts.dump {
		fallback = os.Stderr
	}
	logger, logCloser, err := newLogger(opts.logLevel, opts.logFile, fallback)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	configPath := opts.configPath
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := loadConfig(configPath, opts.configPath != "")
	if err != nil {
		return err
	}
	colorscheme, err := cfg.buildColorscheme()
	if err != nil {
		return errors.Wrapf(err, "config %s", configPath)
	}

	diagnostics := &syntax.Collector{}
	logReporter := syntax.NewLogReporter(logger)
	repo := grammars.NewRepository(syntax.WithReporter(syntax.ReporterFunc(func(d syntax.Diagnostic) {
		diagnostics.Report(d)
		logReporter.Report(d)
	})))

	def, err := selectDefinition(repo, path, opts.syntaxName)
	if err != nil {
		return err
	}
	if def != nil && !def.Load() {
		logger.WithError(def.Err()).Warn("Highlighting as plain text")
		def = nil
	}

	contents, err := readFile(path)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"path": path, "bytes": len(contents)}).Debug("Loaded file")

	if opts.dump {
		return dumpSpans(stdout, buffer.NewRopeBuffer(contents), def)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "creating screen")
	}
	if err := s.Init(); err != nil {
		return errors.Wrap(err, "initializing screen")
	}
	defer s.Fini() // Useful for handling panics

	clipboard := NewClipboard(logger)
	newEditor(s, path, contents, repo, def, cfg, &colorscheme, diagnostics, clipboard, logger).run()
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
