package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadFloatColumns reads a whitespace separated table with a fixed number of
// columns per row. Empty lines and lines starting with '#' are skipped.
func ReadFloatColumns(filename string, columns int) ([][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	var result [][]float64

	scanner := bufio.NewScanner(file)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		if len(parts) != columns {
			return nil, fmt.Errorf("invalid format in line %d: %q - expected %d numbers, got %d", lineNumber, line, columns, len(parts))
		}

		row := make([]float64, columns)
		for i := range parts {
			row[i], err = strconv.ParseFloat(parts[i], 64)
			if err != nil {
				return nil, fmt.Errorf("error parsing float in line %d %q: %w", lineNumber, line, err)
			}
		}
		result = append(result, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return result, nil
}

// ResolvePath interprets relative paths against the directory of the file
// that referenced them.
func ResolvePath(referrer, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(referrer), path)
}

// MakeOutputDir creates the directory of the output file and returns its path.
func MakeOutputDir(makeDir bool, outputPath, subpath, name, ext string) (string, error) {
	path := OutputPath(makeDir, outputPath, subpath, name, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}
	return path, nil
}

// OutputPath places name under outputPath, in a subpath directory with
// makeDir or prefixed with subpath otherwise.
func OutputPath(makeDir bool, outputPath, subpath, name, ext string) string {
	if makeDir && subpath != "" && subpath != "." {
		return filepath.Join(outputPath, subpath, name+ext)
	} else if subpath != "" && subpath != "." {
		name = subpath + "_" + name
	}
	return filepath.Join(outputPath, name+ext)
}
