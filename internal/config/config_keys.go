// config_keys.go provides key-value access to settings.
//
// Separated from config.go so the YAML structure stays readable while the
// string-keyed access used by `fusen config` and the MCP server lives here.
// List values are written and read as os.PathListSeparator-joined strings,
// the same convention as $PATH.

package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"clearTagsOnImport", "defaultApplicationPath", "deleteFileAfterImport",
		"scanDirectories", "scanRecursive", "scanIgnore",
		"maxPathLength",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "clearTagsOnImport":
		return strconv.FormatBool(c.ClearOnImport()), nil
	case "defaultApplicationPath":
		return c.ApplicationPath(), nil
	case "deleteFileAfterImport":
		return strconv.FormatBool(c.DeleteAfterImport()), nil
	case "scanDirectories":
		return joinList(c.ScanDirectories), nil
	case "scanRecursive":
		return strconv.FormatBool(c.Recursive()), nil
	case "scanIgnore":
		return joinList(c.ScanIgnore), nil
	case "maxPathLength":
		return strconv.Itoa(c.MaxPath()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "clearTagsOnImport":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.ClearTagsOnImport = &b
	case "defaultApplicationPath":
		c.DefaultApplicationPath = value
	case "deleteFileAfterImport":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.DeleteFileAfterImport = &b
	case "scanDirectories":
		c.ScanDirectories = splitList(value)
	case "scanRecursive":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.ScanRecursive = &b
	case "scanIgnore":
		c.ScanIgnore = splitList(value)
	case "maxPathLength":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxPath || n > MaxMaxPath {
			return fmt.Errorf("%w: maxPathLength must be an integer between %d and %d", ErrInvalidValue, MinMaxPath, MaxMaxPath)
		}
		c.MaxPathLength = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		m[k] = v
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "clearTagsOnImport":
		return c.ClearTagsOnImport != nil
	case "defaultApplicationPath":
		return c.DefaultApplicationPath != ""
	case "deleteFileAfterImport":
		return c.DeleteFileAfterImport != nil
	case "scanDirectories":
		return len(c.ScanDirectories) > 0
	case "scanRecursive":
		return c.ScanRecursive != nil
	case "scanIgnore":
		return len(c.ScanIgnore) > 0
	case "maxPathLength":
		return c.MaxPathLength != nil
	default:
		return false
	}
}

func parseBool(key, value string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v != "true" && v != "false" {
		return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
	}
	return v == "true", nil
}

func joinList(items []string) string {
	return strings.Join(items, string(os.PathListSeparator))
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, string(os.PathListSeparator)) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
