package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// scenarioFile is the YAML shape: a map of preset name to engine settings.
// Each preset is decoded over a config that already carries the flag values,
// so a preset only needs the keys it actually changes.
type scenarioFile struct {
	Scenarios map[string]yaml.Node `yaml:"scenarios"`
}

// applyScenario overlays the named preset from path onto cfg, which must be
// a pointer to one of the sim config structs.
func applyScenario(path string, name string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenarios file: %w", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse scenarios file %s: %w", path, err)
	}

	node, ok := file.Scenarios[name]
	if !ok {
		return fmt.Errorf("scenario %q not found in %s", name, path)
	}
	if err := node.Decode(cfg); err != nil {
		return fmt.Errorf("scenario %q: %w", name, err)
	}
	logrus.Infof("Applied scenario preset %q from %s", name, path)
	return nil
}
