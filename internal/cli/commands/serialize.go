package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/ministore/filterexpr/filterexpr"
	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/internal/cliopt"
	"github.com/ministore/filterexpr/internal/cliutil"
)

type serializeView struct {
	Type   clause.FilterType `json:"type" yaml:"type" msgpack:"type"`
	Result string            `json:"result" yaml:"result" msgpack:"result"`
}

// RunSerialize reads a clause list in wire form and prints its canonical text.
func RunSerialize(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet(g, "serialize")
	var typ, in, inFormat, out string
	addTypeFlag(fs, &typ)
	addFormatFlag(fs, g, &out)
	fs.StringVar(&in, "in", "", "clause file (default: stdin)")
	fs.StringVar(&inFormat, "input-format", "json", "input format: json|yaml|msgpack")
	if code := parseFlags(g, fs, argv); code >= 0 {
		return code
	}
	t, ok := requireType(g, typ)
	if !ok {
		return 2
	}
	decode, ok := decoders[inFormat]
	if !ok {
		fmt.Fprintf(g.Stderr, "unknown input format: %s\n", inFormat)
		return 2
	}

	data, err := readInput(g, in)
	if err != nil {
		return fail(g, err)
	}
	clauses, err := decode(data, t)
	if err != nil {
		return fail(g, err)
	}
	text, err := filterexpr.SerializeText(clauses, t)
	if err != nil {
		return fail(g, err)
	}
	err = cliutil.Emit(g.Stdout, format(out), serializeView{Type: t, Result: text}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, text)
		return err
	})
	if err != nil {
		return fail(g, err)
	}
	return 0
}

var decoders = map[string]func([]byte, clause.FilterType) ([]clause.Clause, error){
	"json":    filterexpr.DecodeJSON,
	"yaml":    filterexpr.DecodeYAML,
	"msgpack": filterexpr.DecodeMsgpack,
}

func readInput(g cliopt.GlobalOptions, path string) ([]byte, error) {
	if path != "" && path != "-" {
		return os.ReadFile(path)
	}
	if g.Stdin == nil {
		return nil, fmt.Errorf("no input")
	}
	return io.ReadAll(g.Stdin)
}
