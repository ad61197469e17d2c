// Package main provides the latte binary: an interactive REPL and a batch
// checker for the LaTTe definition & proof registration pipeline.
//
// The binary ships with the structural dry-run kernel only; it exercises the
// full registration pipeline (forms, contexts, registry, proofs) without
// typechecking. Embedders with a real kernel use the latte package directly.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	latte "github.com/zampino/LaTTe"
	"github.com/zampino/LaTTe/kerneltest"
)

const (
	version     = "0.1.0"
	appName     = "latte"
	historyFile = ".latte_history"
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }
func faint(s string) string { return "\x1b[2m" + s + "\x1b[0m" }

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// config is the optional YAML configuration (--config, default ~/.latte.yaml).
type config struct {
	Prompt     string   `yaml:"prompt"`
	ContPrompt string   `yaml:"continuation_prompt"`
	History    string   `yaml:"history"`
	Prelude    []string `yaml:"prelude"`
}

func defaultConfig() config {
	home, _ := os.UserHomeDir()
	return config{
		Prompt:     "==> ",
		ContPrompt: "... ",
		History:    filepath.Join(home, historyFile),
	}
}

func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		kernelName string
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Definition and proof registration pipeline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	home, _ := os.UserHomeDir()
	cmd.PersistentFlags().StringVar(&configPath, "config", filepath.Join(home, ".latte.yaml"), "config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&kernelName, "kernel", "structural", "kernel to drive (structural)")

	newSession := func() (*latte.Session, config, error) {
		explicit := cmd.PersistentFlags().Changed("config")
		cfg, err := loadConfig(configPath, explicit)
		if err != nil {
			return nil, cfg, err
		}
		if kernelName != "structural" {
			return nil, cfg, fmt.Errorf("unknown kernel %q (available: structural)", kernelName)
		}
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, cfg, fmt.Errorf("bad --log-level %q", logLevel)
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
		s := latte.NewSession(kerneltest.Structural(), latte.WithLogger(logger))
		for _, p := range cfg.Prelude {
			if err := checkFile(s, p, io.Discard); err != nil {
				return nil, cfg, fmt.Errorf("prelude %s: %w", p, err)
			}
		}
		return s, cfg, nil
	}

	cmd.AddCommand(replCmd(newSession), checkCmd(newSession))
	return cmd
}

// -----------------------------------------------------------------------------
// check
// -----------------------------------------------------------------------------

func checkCmd(newSession func() (*latte.Session, config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Batch-load files of forms, failing on the first error",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newSession()
			if err != nil {
				return err
			}
			for _, f := range args {
				if err := checkFile(s, f, cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d definitions\n", s.Registry().Len())
			return nil
		},
	}
}

func checkFile(s *latte.Session, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	src := string(data)
	forms, err := latte.ReadAll(src)
	if err != nil {
		return latte.WrapErrorWithName(err, path, src)
	}
	for _, form := range forms {
		res, err := s.EvalForm(form)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", path, latte.FmtS(form), err)
		}
		fmt.Fprintln(out, latte.FmtS(res))
	}
	return nil
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func replCmd(newSession func() (*latte.Session, config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := newSession()
			if err != nil {
				return err
			}
			return repl(s, cfg)
		},
	}
}

func repl(s *latte.Session, cfg config) error {
	fmt.Printf("LaTTe %s (structural kernel)\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(cfg.History); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(cfg.History); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, ok := readByParseProbe(ln, cfg.Prompt, cfg.ContPrompt)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return nil
			case ":defs":
				for _, n := range s.Registry().Names() {
					d, _ := s.Registry().Lookup(n)
					fmt.Printf("%s %s\n", faint(d.Kind().String()), n)
				}
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		form, err := latte.ReadString(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(latte.WrapErrorWithSource(err, src).Error()))
			continue
		}
		res, err := s.EvalForm(form)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(latte.FmtS(res)))
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readByParseProbe accumulates prompt lines until the reader stops reporting
// the input as incomplete, so multi-line forms continue on the next prompt.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if _, perr := latte.ReadString(src); perr != nil && latte.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
