// Command fxworld inspects, exports and converts fixed-point world files
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lixenwraith/fxworld/config"
	"github.com/lixenwraith/fxworld/status"
)

var errUsage = errors.New("usage")

const usage = `usage: fxworld [-config path] [-debug] <command> [args]

commands:
  info <file>                        version, section counts and decode counters
  dump <file>                        world as a JSON document
  schema                             JSON schema of dumped documents
  validate <json>                    check a JSON document against the schema
  convert [-version N] <in> <out>    re-encode a world file or JSON document
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fxworld", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	cfgPath := fs.String("config", "", "YAML config file")
	debug := fs.Bool("debug", false, "write logs to the log directory")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "fxworld: %v\n", err)
		return 1
	}

	logDir = cfg.LogDir
	logFileName = cfg.LogFileName
	if logFile := setupLogging(*debug || cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	t := &tool{cfg: cfg, stdout: stdout, stats: status.NewRegistry()}
	cmd, cmdArgs := rest[0], rest[1:]
	log.Printf("fxworld %s %v", cmd, cmdArgs)

	switch cmd {
	case "info":
		err = t.info(cmdArgs)
	case "dump":
		err = t.dump(cmdArgs)
	case "schema":
		err = t.schema(cmdArgs)
	case "validate":
		err = t.validate(cmdArgs)
	case "convert":
		err = t.convert(cmdArgs, stderr)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	if err != nil {
		log.Printf("fxworld %s failed: %v", cmd, err)
		fmt.Fprintf(stderr, "fxworld %s: %v\n", cmd, err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(stderr, usage)
			return 2
		}
		return 1
	}
	return 0
}
