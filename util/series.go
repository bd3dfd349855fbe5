package util

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// ReadSeries reads a single series from path. Files ending in .json hold a
// JSON array, files ending in .yaml or .yml a YAML sequence; anything else
// is read as numbers separated by whitespace or commas.
func ReadSeries(path string) ([]float64, error) {
	if !utility.FileExists(path) {
		return nil, errors.Errorf("file %s does not exist", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		out := []float64{}
		if err = utility.ReadJSON(f, &out); err != nil {
			return nil, errors.Wrapf(err, "problem parsing json series from %s", path)
		}
		return out, nil
	case ".yaml", ".yml":
		out := []float64{}
		if err := utility.ReadYAMLFile(path, &out); err != nil {
			return nil, errors.WithStack(err)
		}
		return out, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer f.Close()

		out, err := ParseSeries(f)
		return out, errors.Wrapf(err, "problem parsing series from %s", path)
	}
}

// ReadSeriesSet reads a mapping of series names to series from a JSON or
// YAML document.
func ReadSeriesSet(path string) (map[string][]float64, error) {
	if !utility.FileExists(path) {
		return nil, errors.Errorf("file %s does not exist", path)
	}

	out := map[string][]float64{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if err = utility.ReadJSON(f, &out); err != nil {
			return nil, errors.Wrapf(err, "problem parsing json series set from %s", path)
		}
		return out, nil
	}

	if err := utility.ReadYAMLFile(path, &out); err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

// ParseSeries reads numbers separated by whitespace or commas. Lines
// starting with # are ignored.
func ParseSeries(r io.Reader) ([]float64, error) {
	out := []float64{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(c rune) bool { return c == ',' || unicode.IsSpace(c) })
		for _, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid value '%s' on line %d", field, lineNum)
			}
			out = append(out, value)
		}
	}

	return out, errors.WithStack(scanner.Err())
}
