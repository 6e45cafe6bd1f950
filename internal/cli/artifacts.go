package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/matzehuels/hypertower/pkg/errors"
)

// artifactWriteParams describes rendered outputs to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// writeArtifacts writes each artifact next to its base path. A single
// format honors -o as the exact file name ("-" for stdout); several formats
// use -o as the base path.
func writeArtifacts(p artifactWriteParams) error {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return errs.New(errs.ErrCodeInvalidInput, "stdout output takes exactly one format, got %d", len(p.formats))
		}
		_, err := stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	base := basePath(p.output, p.input)
	var written []string
	for _, format := range p.formats {
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d %s", len(written), plural(len(written), "file", "files"))
	for _, path := range written {
		printFile(path)
	}
	status := iconFresh
	if p.cacheHit {
		status = iconCached
	}
	printDetail("%s", status)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension (and a trailing ".layout")
// from input. If output has a format extension (.svg, .pdf, etc.), it strips
// that extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if slices.Contains(errs.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
