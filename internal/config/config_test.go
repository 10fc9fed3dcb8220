package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type testCLI struct {
	Domain     string `short:"D"`
	WildStart  bool   `name:"wild-start"`
	IgnoreCase bool   `name:"ignore-case"`
	Group      bool   `default:"true" negatable:""`
}

func parse(t *testing.T, args []string, paths ...string) testCLI {
	t.Helper()
	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(YAML, paths...))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cli
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestYAMLDefaults(t *testing.T) {
	path := writeConfig(t, "domain: example.com\nwild-start: true\nignore_case: true\ngroup: false\n")

	cli := parse(t, nil, path)

	if cli.Domain != "example.com" {
		t.Errorf("Domain = %q, want example.com", cli.Domain)
	}
	if !cli.WildStart {
		t.Error("WildStart = false, want true from hyphenated key")
	}
	if !cli.IgnoreCase {
		t.Error("IgnoreCase = false, want true from underscored key")
	}
	if cli.Group {
		t.Error("Group = true, want false from config")
	}
}

func TestYAMLFlagsOverride(t *testing.T) {
	path := writeConfig(t, "domain: example.com\n")

	cli := parse(t, []string{"--domain", "other.org"}, path)
	if cli.Domain != "other.org" {
		t.Errorf("Domain = %q, want flag value other.org", cli.Domain)
	}
}

func TestYAMLMissingAndEmpty(t *testing.T) {
	empty := writeConfig(t, "")
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cli := parse(t, nil, missing, empty)
	if cli.Domain != "" || !cli.Group {
		t.Errorf("unexpected values from empty config: %+v", cli)
	}
}

func TestYAMLInvalid(t *testing.T) {
	_, err := YAML(strings.NewReader("domain: [unterminated\n"))
	if err == nil {
		t.Fatal("YAML() error = nil, want parse error")
	}
}

func TestNormalizeKeys(t *testing.T) {
	got := normalizeKeys(map[string]any{
		"wild-end": true,
		"nested":   map[string]any{"ignore-case": true},
	})

	if _, ok := got["wild_end"]; !ok {
		t.Errorf("normalizeKeys() = %v, missing wild_end", got)
	}
	nested, _ := got["nested"].(map[string]any)
	if _, ok := nested["ignore_case"]; !ok {
		t.Errorf("normalizeKeys() nested = %v, missing ignore_case", nested)
	}
}
