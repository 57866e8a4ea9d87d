package script

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Builtins returns the built-in scripts sorted by name.
func Builtins() []Script {
	var scripts []Script
	if err := yaml.Unmarshal(builtinYAML, &scripts); err != nil {
		panic(fmt.Sprintf("script: invalid builtin.yaml: %v", err))
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Name < scripts[j].Name })
	return scripts
}

// Builtin returns the built-in script with the given name.
func Builtin(name string) (Script, bool) {
	for _, s := range Builtins() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Script{}, false
}

// Parse decodes one script document.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// Load resolves ref as a built-in name first, then as a file path.
func Load(ref string) (Script, error) {
	if s, ok := Builtin(ref); ok {
		return s, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return Script{}, fmt.Errorf("no built-in script or file named %q", ref)
		}
		return Script{}, fmt.Errorf("reading script: %w", err)
	}
	return Parse(data)
}
