package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/manifest"
)

func newOutCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	return cmd
}

func TestRunSetup(t *testing.T) {
	t.Run("fresh directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		var out bytes.Buffer
		if err := runSetup(newOutCmd(&out), nil); err != nil {
			t.Fatalf("runSetup: %v", err)
		}
		for _, sub := range []string{"modules", "data"} {
			info, err := os.Stat(filepath.Join(dir, sub))
			if err != nil || !info.IsDir() {
				t.Errorf("expected %s/ to exist", sub)
			}
		}
		if _, err := manifest.Read(dir); err != nil {
			t.Errorf("expected a readable manifest: %v", err)
		}
		if !strings.Contains(out.String(), manifest.FileName) {
			t.Errorf("expected output to mention %s, got:\n%s", manifest.FileName, out.String())
		}
	})

	t.Run("keeps existing manifest", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile(manifest.Path(dir), []byte("name: custom\nversion: 9.9.9\n"), 0644); err != nil {
			t.Fatal(err)
		}

		var out bytes.Buffer
		if err := runSetup(newOutCmd(&out), nil); err != nil {
			t.Fatalf("runSetup: %v", err)
		}
		p, err := manifest.Read(dir)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if p.Name != "custom" || p.Version != "9.9.9" {
			t.Errorf("manifest was rewritten: %+v", p)
		}
	})

	t.Run("corrupt manifest is an error", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile(manifest.Path(dir), []byte("[\n"), 0644); err != nil {
			t.Fatal(err)
		}

		var out bytes.Buffer
		if err := runSetup(newOutCmd(&out), nil); err == nil {
			t.Fatal("expected an error for an unreadable manifest")
		}
	})
}
