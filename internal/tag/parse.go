// parse.go turns user-entered tag text into stored tag labels.
//
// Tags arrive as comma-separated text from the CLI, MCP tool arguments and
// query strings. Stored tags never contain a space or a quote character, so
// every entry point runs through Sanitise before touching the catalog.

package tag

import "strings"

// PathKey is the reserved word that can never be a tag. It names the path
// column in import/export files and is dropped wherever tags are parsed.
const PathKey = "path"

var sanitiser = strings.NewReplacer(" ", "_", "'", "_", `"`, "_")

// Sanitise replaces every space, single quote and double quote with an
// underscore. Other characters, including case, are kept.
func Sanitise(t string) string {
	return sanitiser.Replace(t)
}

// Split breaks comma-separated text into raw tokens: trimmed and sanitised,
// with empty tokens dropped. Order and duplicates are preserved. The query
// evaluator uses this directly so it can still see a leading "-".
func Split(text string) []string {
	var out []string
	for _, tok := range strings.Split(text, ",") {
		tok = Sanitise(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Parse splits text into tag labels ready for storage: sanitised, with empty
// tokens and the reserved word dropped and duplicates removed.
func Parse(text string) []string {
	return Clean(Split(text))
}

// Clean sanitises an already split list of tags, dropping empty entries,
// the reserved word and repeats while keeping first-seen order.
func Clean(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = Sanitise(strings.TrimSpace(t))
		if t == "" || t == PathKey || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
