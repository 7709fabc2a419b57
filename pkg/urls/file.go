package urls

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// FileParser reads talk URLs from a text file, one per line.
// Blank lines and lines starting with '#' are skipped.
type FileParser struct{}

// NewFileParser creates a new file parser
func NewFileParser() *FileParser {
	return &FileParser{}
}

// Fetch reads URLs from the file at filePath
func (p *FileParser) Fetch(_ context.Context, filePath string) ([]URL, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var result []URL
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Lists pasted from JSON or CSV often keep their separators
		line = strings.Trim(line, "\", \t")
		if line == "" {
			continue
		}

		result = append(result, URL{Location: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file at line %d: %w", lineNum, err)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no URLs found in file")
	}

	return result, nil
}
