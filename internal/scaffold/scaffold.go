package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/datalab-labs/datalab/internal/platform"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// EntryFile is the module entry script generated by the template set and
// executed by the runner.
const EntryFile = "run.sh"

// Data holds the template variables available to module templates. The
// module name is the single substitution every template receives.
type Data struct {
	Name string
}

// Generate renders the embedded module template set into dir, overwriting
// files that already exist. Returns the filenames written, in directory
// order.
func Generate(dir, name string) ([]string, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("reading template set: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string
	for _, entry := range entries {
		raw, err := fs.ReadFile(templateFS, "templates/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", entry.Name(), err)
		}

		tmpl, err := template.New(entry.Name()).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, Data{Name: name}); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(dir, outName)
		perm := os.FileMode(0644)
		if outName == EntryFile {
			perm = 0755
		}
		if err := os.WriteFile(outPath, buf.Bytes(), perm); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outName, err)
		}
		// WriteFile only applies perm on create; restore the executable
		// bit when regenerating over an existing entry script.
		if outName == EntryFile {
			if err := platform.Chmod(outPath, perm); err != nil {
				return nil, fmt.Errorf("marking %s executable: %w", outName, err)
			}
		}
		written = append(written, outName)
	}

	return written, nil
}

// Files returns the filenames the template set generates, without writing
// anything.
func Files() ([]string, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("reading template set: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".tmpl"))
	}
	return names, nil
}
