package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/fxworld/config"
	"github.com/lixenwraith/fxworld/export"
	"github.com/lixenwraith/fxworld/status"
	"github.com/lixenwraith/fxworld/world"
	"github.com/lixenwraith/fxworld/worldfile"
)

type tool struct {
	cfg    config.Config
	stdout io.Writer
	stats  *status.Registry
}

func wantArgs(args []string, n int, names string) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %s", errUsage, names)
	}
	return nil
}

// open decodes a world file, logging when only a prefix could be read
func (t *tool) open(path string) (worldfile.Summary, *world.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return worldfile.Summary{}, nil, err
	}
	defer f.Close()

	t.stats.SetLabel("load.last_file", path)

	sum, w, err := worldfile.Inspect(bufio.NewReader(f),
		worldfile.WithLogger(log.Default()),
		worldfile.WithStatus(t.stats))
	if err != nil {
		return sum, nil, fmt.Errorf("%s: %w", path, err)
	}
	if sum.Truncated {
		log.Printf("%s: stream truncated, keeping the decoded prefix", path)
	}
	return sum, w, nil
}

// readDocument loads a JSON document, checking schema and indices
func readDocument(path string) (*export.Document, *world.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := export.Validate(data); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	doc, err := export.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	w, err := doc.ToWorld()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, w, nil
}

func (t *tool) info(args []string) error {
	if err := wantArgs(args, 1, "<file>"); err != nil {
		return err
	}
	sum, _, err := t.open(args[0])
	if err != nil {
		return err
	}

	names := make([]string, len(sum.Sections))
	for i, s := range sum.Sections {
		names[i] = s.String()
	}

	out := t.stdout
	fmt.Fprintf(out, "file:        %s\n", args[0])
	fmt.Fprintf(out, "version:     %d\n", sum.Version)
	fmt.Fprintf(out, "sections:    %s\n", strings.Join(names, " "))
	fmt.Fprintf(out, "truncated:   %t\n", sum.Truncated)
	fmt.Fprintf(out, "shapes:      %d (+%d composite)\n", sum.Shapes, sum.MultiShapes)
	fmt.Fprintf(out, "bodies:      %d\n", sum.Bodies)
	fmt.Fprintf(out, "segments:    %d\n", sum.Segments)
	fmt.Fprintf(out, "constraints: %d joint, %d spring, %d motor\n", sum.Joints, sum.Springs, sum.Motors)
	fmt.Fprintf(out, "scripts:     %d (%d bound)\n", sum.Scripts, sum.Bindings)
	fmt.Fprintf(out, "events:      %d\n", sum.Events)
	fmt.Fprintf(out, "emitters:    %d\n", sum.Emitters)
	fmt.Fprintf(out, "params:      %t\n", sum.HasParams)
	fmt.Fprintln(out, "counters:")
	t.stats.RangeCounts("", func(key string, n int64) {
		fmt.Fprintf(out, "  %-28s %d\n", key, n)
	})
	return nil
}

func (t *tool) dump(args []string) error {
	if err := wantArgs(args, 1, "<file>"); err != nil {
		return err
	}
	sum, w, err := t.open(args[0])
	if err != nil {
		return err
	}

	data, err := export.FromWorld(w, sum.Version).Encode(t.cfg.IndentJSON)
	if err != nil {
		return err
	}
	if t.cfg.ValidateOnDump {
		if err := export.Validate(data); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(t.stdout, "%s\n", data)
	return err
}

func (t *tool) schema(args []string) error {
	if err := wantArgs(args, 0, "no arguments"); err != nil {
		return err
	}
	data, err := export.Schema(t.cfg.IndentJSON)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(t.stdout, "%s\n", data)
	return err
}

func (t *tool) validate(args []string) error {
	if err := wantArgs(args, 1, "<json>"); err != nil {
		return err
	}
	doc, w, err := readDocument(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(t.stdout, "%s: valid document %s (version %d, %d bodies)\n",
		args[0], doc.ID, doc.Version, len(w.Bodies))
	return err
}

func (t *tool) convert(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	version := fs.Int("version", int(t.cfg.WriteVersion), "target world file version")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := wantArgs(fs.Args(), 2, "<in> <out>"); err != nil {
		return err
	}
	in, out := fs.Arg(0), fs.Arg(1)
	target := worldfile.Version(*version)
	if int(target) != *version || !target.Supported() {
		return fmt.Errorf("%w: -version %d outside %d..%d", errUsage, *version, worldfile.MinVersion, worldfile.CurrentVersion)
	}

	var w *world.World
	var err error
	if strings.EqualFold(filepath.Ext(in), ".json") {
		_, w, err = readDocument(in)
	} else {
		_, w, err = t.open(in)
	}
	if err != nil {
		return err
	}

	if err := writeWorld(out, w, target); err != nil {
		return err
	}
	log.Printf("converted %s to %s at version %d", in, out, target)
	_, err = fmt.Fprintf(t.stdout, "wrote %s (version %d)\n", out, target)
	return err
}

// writeWorld saves through a temporary file so a failed save leaves out untouched
func writeWorld(out string, w *world.World, v worldfile.Version) error {
	tmp, err := os.CreateTemp(filepath.Dir(out), ".fxworld-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := worldfile.Save(bw, w, v); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), out)
}
