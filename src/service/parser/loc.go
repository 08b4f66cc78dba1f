package parser

import "strings"

// CountLinesOfCode counts lines that hold code, skipping blank lines and
// lines that only contain // or /* */ comments. String literals are not
// tracked, so a comment marker inside a string is taken at face value.
func CountLinesOfCode(content string) int {
	count := 0
	inBlock := false

	for _, line := range strings.Split(content, "\n") {
		rest := strings.TrimSpace(line)
		hasCode := false

		for rest != "" {
			if inBlock {
				end := strings.Index(rest, "*/")
				if end < 0 {
					rest = ""
					break
				}
				inBlock = false
				rest = strings.TrimSpace(rest[end+2:])
				continue
			}

			if strings.HasPrefix(rest, "//") {
				break
			}
			if strings.HasPrefix(rest, "/*") {
				inBlock = true
				rest = rest[2:]
				continue
			}

			hasCode = true
			next := strings.Index(rest, "/*")
			if line := strings.Index(rest, "//"); next < 0 || (line >= 0 && line < next) {
				break
			}
			rest = rest[next:]
		}

		if hasCode {
			count++
		}
	}

	return count
}
