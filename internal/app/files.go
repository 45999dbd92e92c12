package app

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// LoadDocument reads a Markdown file as UTF-8 text.
func LoadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read document %s: not valid UTF-8", path)
	}
	return string(data), nil
}

// SaveDocument writes content to path. When backup is set and the file
// already exists, the previous content is copied to path.bak first.
func SaveDocument(path, content string, backup bool) error {
	if backup {
		if prev, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+".bak", prev, 0644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("read for backup: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
