// Package cli implements the querl command line host: parsing queries into
// their model dumps, re-encoding them canonically and evaluating them
// against a demo action set. The engine core never prints; everything
// user-facing lives here.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/querl/querl/internal/config"
	"github.com/querl/querl/pkg/parse"
	"github.com/querl/querl/pkg/value"
)

const usage = `querl - URL-path-safe action query language

Usage:
  querl parse <query>             parse the flat action path, dump the model
  querl segments <query>          parse the segmented form, dump the model
  querl encode <query>            parse and re-encode as canonical text
  querl eval <query> [<value>]    evaluate against the built-in actions
  querl formats                   list serialization formats

Options for eval:
  -f, --format <name>   output format: json, yaml, msgpack, txt

The initial value defaults to the integer 0. A value argument is read as an
integer, real or bool when it looks like one, and as text otherwise.
`

// Run executes one CLI invocation and returns the process exit code.
func Run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(os.Stderr, usage)
		return 0
	}

	var err error
	switch args[0] {
	case "parse":
		err = runParse(args[1:])
	case "segments":
		err = runSegments(args[1:])
	case "encode":
		err = runEncode(args[1:])
	case "eval":
		err = runEval(args[1:])
	case "formats":
		err = runFormats(os.Stdout)
	default:
		err = fmt.Errorf("unknown command '%s', see 'querl help'", args[0])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func oneQueryArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one query argument")
	}
	return args[0], nil
}

// dumpJSON renders a model dump, indented when stdout is a terminal.
func dumpJSON(w io.Writer, v interface{}) error {
	var b []byte
	var err error
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func runParse(args []string) error {
	text, err := oneQueryArg(args)
	if err != nil {
		return err
	}
	path, err := parse.ParseQuery(text)
	if err != nil {
		return err
	}
	return dumpJSON(os.Stdout, path)
}

func runSegments(args []string) error {
	text, err := oneQueryArg(args)
	if err != nil {
		return err
	}
	q, err := parse.ParseSegmentedQuery(text)
	if err != nil {
		return err
	}
	return dumpJSON(os.Stdout, q)
}

func runEncode(args []string) error {
	text, err := oneQueryArg(args)
	if err != nil {
		return err
	}
	q, err := parse.ParseSegmentedQuery(text)
	if err != nil {
		return err
	}
	encoded, err := q.Encode()
	if err != nil {
		return err
	}
	fmt.Println(encoded)
	return nil
}

// readValueArg turns a CLI argument into an initial value: integer, real
// and bool literals get their scalar types, everything else is text.
func readValueArg(arg string) value.Value {
	if i, err := strconv.Atoi(arg); err == nil {
		return value.OfInt(i)
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return value.OfFloat(f)
	}
	if b, err := strconv.ParseBool(arg); err == nil {
		return value.OfBool(b)
	}
	return value.OfString(arg)
}

func runEval(args []string) error {
	format := config.DefaultFormat
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f", "--format":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a format name", args[i])
			}
			i++
			format = args[i]
		default:
			rest = append(rest, args[i])
		}
	}
	if len(rest) < 1 || len(rest) > 2 {
		return fmt.Errorf("expected a query and an optional initial value")
	}
	if _, ok := value.FormatByName(format); !ok {
		return fmt.Errorf("unknown format '%s', see 'querl formats'", format)
	}

	var initial value.Value = value.Integer{}
	if len(rest) == 2 {
		initial = readValueArg(rest[1])
	}

	registry := newRegistry()
	result, err := registry.Eval(initial, rest[0])
	if err != nil {
		return err
	}
	encoded, err := value.Encode(result, format)
	if err != nil {
		return err
	}
	os.Stdout.Write(encoded)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println()
	}
	return nil
}

func runFormats(w io.Writer) error {
	for _, f := range value.Formats {
		fmt.Fprintf(w, "%-8s .%-8s %s\n", f.Name, f.Extension, f.MediaType)
	}
	return nil
}
