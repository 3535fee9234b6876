package webjar

import (
	"fmt"
	"os"
	"strings"

	"ocm.software/open-component-model/webassets/blob/filesystem"
	"ocm.software/open-component-model/webassets/blob/inmemory"
)

// UpdateFile replaces the content of path while holding the write lock on it.
// If another writer currently owns the file the update is skipped.
func UpdateFile(path string, content []byte) error {
	_, err := filesystem.WriteLocked(inmemory.NewFromBytes(content), path)
	return err
}

// UpdateURL replaces the first line of content whose trimmed form starts with marker by
// fmt.Sprintf(format, newPath). Leading and trailing whitespace of the line as well as all
// other lines are kept. The content is returned unchanged if no line matches.
func UpdateURL(content, newPath, marker, format string) string {
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		body := strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(body)
		if strings.HasPrefix(trimmed, marker) {
			start := offset + strings.Index(body, trimmed)
			replacement := fmt.Sprintf(format, newPath)
			return content[:start] + replacement + content[start+len(trimmed):]
		}
		offset += len(line)
	}
	return content
}

// UpdateURLInFile applies UpdateURL to the file at path and writes it back only if
// the content changed.
func UpdateURLInFile(path, newPath, marker, format string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", path, err)
	}
	content := string(raw)
	updated := UpdateURL(content, newPath, marker, format)
	if updated == content {
		return nil
	}
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("unable to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(updated), fi.Mode().Perm()); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}
