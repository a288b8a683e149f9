package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// WriteRules replaces linker.rules in the file at path, keeping every other
// key. Legacy single-rule keys are dropped, so callers pass the effective
// rule list. The file and its directory are created when missing.
func WriteRules(path string, rules []types.Rule) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	linker, _ := doc["linker"].(map[string]interface{})
	if linker == nil {
		linker = map[string]interface{}{}
	}
	delete(linker, "pattern")
	delete(linker, "tooltip")
	delete(linker, "links")
	linker["rules"] = rules
	doc["linker"] = linker

	data, err := marshalDocument(path, doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to create config directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write config %s", path)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func readDocument(path string) (map[string]interface{}, error) {
	doc := map[string]interface{}{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config %s", path)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = toml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config %s", path)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}

func marshalDocument(path string, doc map[string]interface{}) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = toml.Marshal(doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigWrite, "failed to encode config %s", path)
	}
	return data, nil
}
