package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~/" and makes the path absolute.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// ResolvePath expands path and, when it is relative, anchors it at base.
func ResolvePath(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") || filepath.IsAbs(path) || base == "" {
		return ExpandPath(path)
	}
	return filepath.Join(base, path)
}

// ExpandTemplate substitutes {name} placeholders in a path template.
func ExpandTemplate(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
