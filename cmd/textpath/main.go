// Command textpath samples path strings for text layout and reports the
// preset shape each one matches.
//
// Paths are taken from the arguments, or one per line from standard input.
// Each path produces one JSON object on standard output, in input order.
//
//	textpath -n 64 "M0,100 Q100,-100 200,100"
//	textpath -config presets.toml < paths.txt
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/textpath"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type options struct {
	n        int
	config   string
	classify bool
	workers  int
	points   bool
	strict   bool
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, map[string]bool, error) {
	var o options
	fs := flag.NewFlagSet("textpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.n, "n", 0, "points per path (0 derives the count from the path length)")
	fs.StringVar(&o.config, "config", "", "configuration file (.toml, .yaml or .yml)")
	fs.BoolVar(&o.classify, "classify", true, "classify each path against the preset shapes")
	fs.IntVar(&o.workers, "workers", runtime.NumCPU(), "paths processed concurrently")
	fs.BoolVar(&o.points, "points", false, "include the sampled points in the output")
	fs.BoolVar(&o.strict, "strict", false, "fail on the first malformed path")
	fs.BoolVar(&o.verbose, "v", false, "log diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return o, nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, fs.Args(), set, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, paths, set, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.verbose {
		textpath.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer textpath.SetLogger(nil)
	}

	cfg := textpath.DefaultConfig()
	if opts.config != "" {
		if cfg, err = loadConfig(opts.config); err != nil {
			return err
		}
	}
	// an explicit flag overrides the file
	if set["classify"] || opts.config == "" {
		cfg = cfg.With(textpath.WithClassify(opts.classify))
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if len(paths) == 0 {
		if paths, err = readLines(stdin); err != nil {
			return fmt.Errorf("reading paths: %w", err)
		}
	}

	records, err := analyzeAll(context.Background(), paths, opts, cfg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// loadConfig decodes a configuration file over the defaults, so omitted
// fields keep their default values.
func loadConfig(path string) (textpath.Config, error) {
	cfg := textpath.DefaultConfig()

	var decode func([]byte, any) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		decode = toml.Unmarshal
	case ".yaml", ".yml":
		decode = yaml.Unmarshal
	default:
		return cfg, fmt.Errorf("config: unsupported file type %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// readLines returns the non-blank lines of r, trimmed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// record is the JSON output for one path.
type record struct {
	Index          int                      `json:"index"`
	Path           string                   `json:"path"`
	Points         int                      `json:"points"`
	Length         float64                  `json:"length"`
	Closed         bool                     `json:"closed"`
	Fallback       bool                     `json:"fallback,omitempty"`
	Errors         []string                 `json:"errors,omitempty"`
	Classification *textpath.Classification `json:"classification,omitempty"`
	Samples        []sample                 `json:"samples,omitempty"`
}

type sample struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Angle    float64 `json:"angle"`
	Distance float64 `json:"distance"`
}

// analyzeAll runs Analyze over paths with at most opts.workers in flight.
// Results keep the input order. In strict mode the first malformed path
// cancels the remaining work.
func analyzeAll(ctx context.Context, paths []string, opts options, cfg textpath.Config) ([]record, error) {
	records := make([]record, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))
	for i, d := range paths {
		i, d := i, d
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := textpath.Analyze(d, opts.n, cfg)
			if opts.strict {
				if err := res.Parse.Err(); err != nil {
					return fmt.Errorf("path %d: %w", i, err)
				}
			}
			records[i] = newRecord(i, d, res, opts.points)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func newRecord(i int, d string, res textpath.Result, withSamples bool) record {
	r := record{
		Index:    i,
		Path:     d,
		Points:   len(res.Samples.Points),
		Length:   res.Samples.Length,
		Closed:   res.Samples.Closed,
		Fallback: res.Samples.Fallback,
	}
	for _, err := range res.Parse.Errors {
		r.Errors = append(r.Errors, err.Error())
	}
	if res.Matched {
		c := res.Classification
		r.Classification = &c
	}
	if withSamples {
		r.Samples = make([]sample, len(res.Samples.Points))
		for j, p := range res.Samples.Points {
			r.Samples[j] = sample{X: p.X, Y: p.Y, Angle: p.Angle, Distance: p.Distance}
		}
	}
	return r
}
