package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveValue updates a single setting in the config file, identified by a
// dotted key such as "store" or "logging.level".
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveValue(configPath, key, value string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	// Read existing file content
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("config root is not a mapping")
	}

	setKeyPath(doc.Content[0], strings.Split(key, "."), value)

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// setKeyPath walks the dotted key path through nested mappings, creating
// intermediate mappings as needed, and sets the final scalar value.
func setKeyPath(mapping *yaml.Node, path []string, value string) {
	child := findOrAppendKey(mapping, path[0])

	if len(path) == 1 {
		child.Kind = yaml.ScalarNode
		child.Tag = ""
		child.Style = 0
		child.Content = nil
		child.Value = value
		return
	}

	if child.Kind != yaml.MappingNode {
		child.Kind = yaml.MappingNode
		child.Tag = ""
		child.Style = 0
		child.Value = ""
		child.Content = nil
	}
	setKeyPath(child, path[1:], value)
}

// findOrAppendKey returns the value node for key in mapping, appending a new
// key/value pair when the key is absent.
func findOrAppendKey(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	valueNode := &yaml.Node{Kind: yaml.ScalarNode}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		valueNode,
	)
	return valueNode
}

// writeAtomic writes data to path via a temp file and rename.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".registrar.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
