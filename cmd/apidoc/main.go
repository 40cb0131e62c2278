// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

// apidoc generates Markdown API references from OpenAPI-like documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/apidoc"
	"github.com/woozymasta/apidoc/internal/config"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/apidoc"
	_buildTime string
)

// cliOptions describes apidoc CLI subcommands.
type cliOptions struct {
	Version  versionCommand  `command:"version" description:"Print version information"`
	Template templateCommand `command:"template" description:"Print built-in markdown template"`
	Markdown markdownCommand `command:"markdown" alias:"md" description:"Convert API document to markdown"`
	Example  exampleCommand  `command:"example" description:"Print example payload of one definition"`
}

// ioArgs groups optional input/output positional arguments.
type ioArgs struct {
	Input  string `positional-arg-name:"input" description:"Input API document path, JSON or YAML (optional; stdin when omitted)"`
	Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
}

// renderFlags groups markdown rendering flags. Empty values fall back to config.
type renderFlags struct {
	ConfigPath    string `short:"c" long:"config" description:"Config file path (default: apidoc.yaml when present)"`
	APIVersion    string `short:"a" long:"api-version" description:"API version rendered into request lines (default: 3)"`
	BaseURL       string `short:"b" long:"base-url" description:"Request line base URL (default: http://example.com/store-api)"`
	TemplateName  string `short:"t" long:"template" description:"Built-in template style (default: default)"`
	TemplatePath  string `short:"f" long:"template-file" description:"Path to custom markdown template (.gotmpl)"`
	ExampleFormat string `short:"e" long:"example-format" description:"Response example format (default: json)" choice:"json" choice:"yaml"`
	WrapWidth     int    `short:"w" long:"wrap" description:"Wrap width for plain description paragraphs, 0 disables wrapping"`
	Verbose       bool   `short:"v" long:"verbose" description:"Log debug diagnostics to stderr"`
}

// markdownCommand converts API document to markdown.
type markdownCommand struct {
	runner *cliRunner
	Args   ioArgs `positional-args:"yes"`

	RenderFlags renderFlags `group:"Markdown Render"`
}

// Execute runs markdown subcommand.
func (command *markdownCommand) Execute(_ []string) error {
	return command.runner.runMarkdown(command.RenderFlags, command.Args.Input, command.Args.Output)
}

// exampleCommand prints example payload for one named definition.
type exampleCommand struct {
	runner *cliRunner
	Args   ioArgs `positional-args:"yes"`

	Ref    string `short:"r" long:"ref" description:"Definition reference (for example: #/components/schemas/Product)" required:"yes"`
	Format string `short:"e" long:"example-format" description:"Example format" choice:"json" choice:"yaml" default:"json"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(command.Ref, command.Format, command.Args.Input, command.Args.Output)
}

// templateCommand exports built-in markdown template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateName string `short:"t" long:"template" description:"Built-in template style" choice:"default" default:"default"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateName, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	parser      *flags.Parser
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "apidoc"
	}

	runner := cliRunner{
		programName: filepath.Base(programName),
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runMarkdown renders markdown from document input and writes result to stdout or file.
func (runner *cliRunner) runMarkdown(renderFlags renderFlags, inputPath, outputPath string) error {
	logger := runner.newLogger(renderFlags.Verbose)

	cfg, err := config.Load(renderFlags.ConfigPath, runner.configOverrides(renderFlags))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	schemaBytes, sourcePath, err := runner.readSchemaInput(inputPath)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	renderOptions := cfg.Options()
	renderOptions.Logger = logger

	if templatePath := strings.TrimSpace(cfg.TemplateFile); templatePath != "" {
		customTemplate, err := os.ReadFile(templatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", templatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
	}

	rendered, err := apidoc.Render(schemaBytes, renderOptions)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	logger.Debug("markdown rendered", "source", sourcePath, "bytes", len(rendered))
	return runner.writeOutput(outputPath, []byte(rendered), "markdown")
}

// runExample writes example payload of one definition to stdout or file.
func (runner *cliRunner) runExample(ref, format, inputPath, outputPath string) error {
	schemaBytes, _, err := runner.readSchemaInput(inputPath)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	data, err := apidoc.GenerateExample(schemaBytes, ref, apidoc.ExampleFormat(format))
	if err != nil {
		return fmt.Errorf("generate example %q: %w", ref, err)
	}

	return runner.writeOutput(outputPath, data, "example")
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := apidoc.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput(outputPath, []byte(tpl), "template")
}

// configOverrides collects explicitly set render flags as koanf keys.
func (runner *cliRunner) configOverrides(renderFlags renderFlags) map[string]any {
	out := make(map[string]any)

	setString := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			out[key] = value
		}
	}

	setString("api-version", renderFlags.APIVersion)
	setString("base-url", renderFlags.BaseURL)
	setString("template", renderFlags.TemplateName)
	setString("template-file", renderFlags.TemplatePath)
	setString("example-format", renderFlags.ExampleFormat)

	if runner.optionSet("wrap") {
		out["wrap"] = renderFlags.WrapWidth
	}

	return out
}

// optionSet reports whether long option was given on the active command line.
func (runner *cliRunner) optionSet(longName string) bool {
	if runner.parser == nil || runner.parser.Active == nil {
		return false
	}

	option := runner.parser.Active.FindOptionByLongName(longName)
	return option != nil && option.IsSet()
}

// newLogger builds stderr text logger; verbose enables debug records.
func (runner *cliRunner) newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(runner.stderr, &slog.HandlerOptions{Level: level}))
}

// readSchemaInput reads document from file path or stdin and returns source marker.
func (runner *cliRunner) readSchemaInput(path string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read schema file %q: %w", path, err)
		}

		return data, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", errors.New("read schema from stdin: empty input")
	}

	return data, "(stdin)", nil
}

// writeOutput writes data to stdout when path is empty, otherwise to file.
func (runner *cliRunner) writeOutput(path string, data []byte, what string) error {
	if strings.TrimSpace(path) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, path, err)
	}

	return nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Template.runner = runner
	options.Markdown.runner = runner
	options.Example.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	runner.parser = parser
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	return err
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"markdown": strings.TrimSpace(fmt.Sprintf(`
Convert an OpenAPI-like document (JSON or YAML) to a markdown API reference.
Reads the document from file argument or stdin; writes markdown to file argument or stdout.
Settings are layered: built-in defaults, config file, then flags.

Examples:
> $ %s markdown store-api.json > store-api.md
> $ cat store-api.yaml | %s markdown --api-version 3 --example-format yaml > store-api.md
`, programName, programName)),
		"example": strings.TrimSpace(fmt.Sprintf(`
Print the example payload generated for one named definition.

Examples:
> $ %s example --ref '#/components/schemas/Product' store-api.json
> $ %s example -e yaml --ref '#/definitions/Cart' store-api.json cart.yaml
`, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in markdown template text.
Use it as a starting point for a custom template file.

Examples:
> $ %s template > reference.gotmpl
> $ %s markdown --template-file reference.gotmpl store-api.json
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
