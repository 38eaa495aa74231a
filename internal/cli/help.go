package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `filterexpr - parse and serialize boolean, number, string and date filters

USAGE
  filterexpr [global flags] <command> [args]

GLOBAL FLAGS
  --config <file.yaml>
  --log-level debug|info|warn|error
  --format pretty|json|yaml|msgpack
  --backend sqlite|postgres
  --sqlite-path <file.db>
  --pg-dsn <dsn>
  --pg-schema <name>

COMMANDS
  parse -t <type> [-e <expr> | <expr>...]
  serialize -t <type> [--in <file>] [--input-format json|yaml|msgpack]
  tokens -t <type> [-e <expr> | <expr>...]
  corpus add|get|list|replay|delete
  config

Settings are read from config.yaml and FILTEREXPR_* environment variables;
flags override both. Exit status is 0 on success, 1 on failure or error
diagnostics, 2 on usage errors.`)
}
