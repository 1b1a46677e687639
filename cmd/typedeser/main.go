// Command typedeser loads a schemaspec schema file and decodes one input
// document against it, printing the decoded values (deserialize.ToNative)
// as indented JSON.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gravitational/trace"
	"github.com/spf13/cobra"

	"github.com/brownfield-data/typedeser/pkg/deserialize"
	"github.com/brownfield-data/typedeser/pkg/schemaspec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliOptions struct {
	schemaPath string
	inputPath  string
	format     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var o cliOptions

	cmd := &cobra.Command{
		Use:           "typedeser --schema <schema.yaml> --input <data.json|data.msgpack>",
		Short:         "Decode a JSON or MessagePack document into typed numeric buffers",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(o)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.schemaPath, "schema", "", "path to a YAML schemaspec definition (required)")
	flags.StringVar(&o.inputPath, "input", "", "path to the JSON or MessagePack document to decode (required)")
	flags.StringVar(&o.format, "format", "auto", `input format: "json", "msgpack", or "auto" (inferred from the input file extension)`)
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging of the decode walk")

	return cmd
}

func run(o cliOptions) error {
	if o.schemaPath == "" || o.inputPath == "" {
		return trace.BadParameter("both --schema and --input are required")
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	schemaData, err := os.ReadFile(o.schemaPath)
	if err != nil {
		return trace.Wrap(err, "reading schema file %q", o.schemaPath)
	}
	spec, err := schemaspec.FromYAML(schemaData, schemaspec.WithLogger(logger))
	if err != nil {
		return trace.Wrap(err, "parsing schema file %q", o.schemaPath)
	}

	inputData, err := os.ReadFile(o.inputPath)
	if err != nil {
		return trace.Wrap(err, "reading input file %q", o.inputPath)
	}

	format := o.format
	if format == "auto" {
		format = inferFormat(o.inputPath)
	}

	schema := deserialize.New(spec)
	var value deserialize.Value
	switch format {
	case "json":
		value, err = schema.DeserializeJSON(inputData)
	case "msgpack":
		value, err = schema.DeserializeMsgpack(inputData)
	default:
		return trace.BadParameter("unrecognized --format %q (want json, msgpack, or auto)", o.format)
	}
	if err != nil {
		return trace.Wrap(err, "decoding %q", o.inputPath)
	}

	out, err := json.MarshalIndent(deserialize.ToNative(value), "", "  ")
	if err != nil {
		return trace.Wrap(err, "marshaling decoded result")
	}
	fmt.Println(string(out))
	return nil
}

func inferFormat(path string) string {
	if strings.HasSuffix(path, ".msgpack") || strings.HasSuffix(path, ".mp") {
		return "msgpack"
	}
	return "json"
}
