package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Extension is the suffix of the assembly definition file written beside
// each decompiled module.
const Extension = ".asmdef"

// Manifest is the Unity assembly definition emitted for a decompiled module.
type Manifest struct {
	Name            string   `json:"name"`
	References      []string `json:"references"`
	AllowUnsafeCode bool     `json:"allowUnsafeCode"`
}

// New builds the manifest for moduleName. Reference order is preserved.
func New(moduleName string, references []string) (*Manifest, error) {
	if moduleName == "" {
		return nil, errors.New("module name is required")
	}
	refs := make([]string, len(references))
	copy(refs, references)
	return &Manifest{
		Name:            moduleName,
		References:      refs,
		AllowUnsafeCode: true,
	}, nil
}

// FileName returns the manifest file name for moduleName.
func FileName(moduleName string) string {
	return moduleName + Extension
}

// Encode returns the indented JSON form of the manifest.
func (m *Manifest) Encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Write builds the manifest for moduleName and stores it in outputFolder.
// It returns the path of the written file.
func Write(outputFolder, moduleName string, references []string) (string, error) {
	m, err := New(moduleName, references)
	if err != nil {
		return "", err
	}
	data, err := m.Encode()
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest for %s: %w", moduleName, err)
	}

	path := filepath.Join(outputFolder, FileName(moduleName))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return path, nil
}

// Read decodes a manifest file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if m.References == nil {
		m.References = []string{}
	}
	return &m, nil
}
