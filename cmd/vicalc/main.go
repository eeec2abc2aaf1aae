// Command vicalc runs a script of spreadsheet editing commands against a
// document and writes the result.
//
//	vicalc [--config vicalc.yaml] [--script edits.txt] [-o out.xlsx] [-v] [input]
//
// The input and output formats follow the file extension: .json (native),
// .csv, .tsv or .xlsx. Without --script, commands are read from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajack/vicalc"
	"github.com/javajack/vicalc/cellref"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// usageError marks a bad command line, as opposed to a failed run.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type flags struct {
	config  string
	script  string
	output  string
	format  string
	verbose bool
}

// run executes the command line and returns the process exit code:
// 0 on success, 1 when the run fails and 2 for usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "vicalc: %v\n", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			fmt.Fprint(stderr, cmd.UsageString())
			return 2
		}
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "vicalc [input]",
		Short: "Run spreadsheet editing commands against a document",
		Long: `Load a document (.json, .csv, .tsv or .xlsx), apply a script of
editing commands read from --script or stdin, and optionally write the
result with -o.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, f, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "YAML configuration file")
	fl.StringVar(&f.script, "script", "", "command script (default: stdin)")
	fl.StringVarP(&f.output, "output", "o", "", "write the result to this file")
	fl.StringVar(&f.format, "format", "", "output format: json, csv, tsv or xlsx (default: from the output extension)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func execute(cmd *cobra.Command, f flags, args []string) error {
	stderr := cmd.ErrOrStderr()

	cfg := &vicalc.Config{}
	if f.config != "" {
		var err error
		if cfg, err = vicalc.LoadConfig(f.config); err != nil {
			return err
		}
	}
	level, _ := cfg.Level()
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := append(cfg.Options(), vicalc.WithLogger(logger))
	s := vicalc.New(opts...)

	if len(args) == 1 {
		if err := readFile(s, args[0]); err != nil {
			return err
		}
	}

	script := cmd.InOrStdin()
	if f.script != "" {
		file, err := os.Open(f.script)
		if err != nil {
			return err
		}
		defer file.Close()
		script = file
	}
	if err := newInterpreter(s, cmd.OutOrStdout(), logger).runScript(script); err != nil {
		return err
	}

	if f.output != "" {
		return writeFile(s, f.output, f.format)
	}
	return nil
}

func formatOf(path, explicit string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "json"
	}
	return ext
}

// readFile loads a document, or imports a table into a fresh sheet.
func readFile(s *vicalc.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch formatOf(path, "") {
	case "json":
		doc, err := vicalc.DecodeDocument(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return s.Load(doc)
	case "xlsx":
		return s.ImportXLSX(f)
	case "csv":
		return s.ReadCSV(f, cellref.New(0, 0))
	case "tsv":
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		return s.ImportTSV(cellref.New(0, 0), string(data))
	}
	return fmt.Errorf("%s: unknown input format", path)
}

// writeFile saves the sheet in the format named by the extension or the
// explicit format.
func writeFile(s *vicalc.Session, path, format string) (err error) {
	format = formatOf(path, format)
	switch format {
	case "json", "csv", "tsv", "xlsx":
	default:
		return fmt.Errorf("%s: unknown output format %q", path, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return export(s, f, format)
}

func export(s *vicalc.Session, w io.Writer, format string) error {
	switch format {
	case "xlsx":
		return s.ExportXLSX(w)
	case "csv", "tsv":
		r, ok := s.UsedRange()
		if !ok {
			return nil
		}
		if format == "csv" {
			return s.WriteCSV(w, r)
		}
		_, err := io.WriteString(w, s.ExportTSV(r)+"\n")
		return err
	}
	return s.Save().Encode(w)
}
