package chomp

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

// RunFile parses srcPath, evaluates each top-level expression under an
// empty context, and writes the serialized results to outPath. A parse
// failure surfaces as a *SourceError and leaves the output file
// unwritten. An empty outPath falls back to the project configuration's
// default output.
func RunFile(srcPath, outPath string, debug bool) error {
	configPath, config, err := FindProjectConfig(filepath.Dir(srcPath))
	if err != nil {
		return errors.Wrap(err, "loading project config")
	}
	if config != nil {
		slog.Debug("loaded project config", "path", configPath)
	}

	if outPath == "" {
		if config == nil || config.Output == "" {
			return errors.New("no output path given and no project default")
		}
		outPath = filepath.Join(filepath.Dir(configPath), config.Output)
	}

	sourceBytes, err := os.ReadFile(srcPath)
	if err != nil {
		return errors.Wrap(err, "reading source file")
	}
	source := string(sourceBytes)

	program, err := ParseProgram(srcPath, source)
	if err != nil {
		return err
	}

	if debug || (config != nil && config.Debug) {
		_, _ = pretty.Println(program)
	}

	var results []Expr
	for _, expr := range program {
		r := Evaluate(EmptyContext(), expr)
		if r.Failed() {
			return errors.Wrapf(r.Err(), "evaluating %s", expr)
		}
		slog.Debug("evaluated", "expr", expr.String(), "matches", len(r.Matches()))
		results = append(results, r.Matches()...)
	}

	if len(results) == 0 && !config.allowEmpty() {
		return errors.New("result matched nothing and allow-empty is off")
	}

	if err := os.WriteFile(outPath, []byte(FormatProgram(results)), 0644); err != nil {
		return errors.Wrap(err, "writing output file")
	}
	return nil
}
