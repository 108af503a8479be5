package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

type command struct {
	summary string
	run     func(ctx context.Context, env *env, args []string) error
}

// env carries the streams and logger shared by subcommands.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// errFailed reports a command that printed its own failure (for example an
// invalid section) and only needs a non-zero exit status.
var errFailed = errors.New("sectionkit: failed")

var commands = map[string]command{
	"validate": {summary: "check a section against the schema rules", run: runValidate},
	"diff":     {summary: "show line changes between two section files", run: runDiff},
	"settings": {summary: "print (or edit) the initial settings state", run: runSettings},
	"preview":  {summary: "render a section with mock storefront data", run: runPreview},
	"fonts":    {summary: "list the font_picker registry", run: runFonts},
	"presets":  {summary: "list mock data presets", run: runPresets},
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("sectionkit", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("v", false, "enable debug logging")
	flags.Usage = func() { usage(flags.Output()) }
	if err := flags.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	e := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}

	rest := flags.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		usage(stderr)
		return 2
	}

	if err := cmd.run(ctx, e, rest[1:]); err != nil {
		switch {
		case errors.Is(err, errFailed):
			return 1
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			fmt.Fprintln(stderr, err)
			return 2
		}
		e.logger.Error("command failed", "command", rest[0], "error", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [-v] <command> [flags] [args]\n\nCommands:\n", filepath.Base(os.Args[0]))
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, commands[name].summary)
	}
}
