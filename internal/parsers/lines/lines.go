// Package lines splits decoded file content into the lines both parsers consume.
package lines

import "strings"

// NonBlank normalizes line endings, strips a UTF-8 BOM, drops the first skip
// lines and then every blank line.
func NonBlank(content string, skip int) []string {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	all := strings.Split(content, "\n")

	if skip > len(all) {
		skip = len(all)
	}
	if skip > 0 {
		all = all[skip:]
	}

	out := make([]string, 0, len(all))
	for _, line := range all {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Sample returns at most n non-blank lines from the start of content
func Sample(content string, n int) []string {
	out := NonBlank(content, 0)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Head keeps the first n non-blank lines that follow the first skip raw lines,
// preserving the skipped preamble. It returns content unchanged when n <= 0.
func Head(content string, skip, n int) string {
	if n <= 0 {
		return content
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	all := strings.Split(normalized, "\n")

	if skip > len(all) {
		skip = len(all)
	}
	kept := append([]string{}, all[:skip]...)
	count := 0
	for _, line := range all[skip:] {
		if count >= n {
			break
		}
		kept = append(kept, line)
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return strings.Join(kept, "\n")
}
