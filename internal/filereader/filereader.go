// Package filereader reads source files referenced by coverage reports,
// transparently decoding the encodings Visual Studio tends to produce.
package filereader

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/coverscope/coverscope/internal/utils"
	"golang.org/x/text/transform"
)

// CountLinesInFile counts the number of physical lines in a file.
func CountLinesInFile(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineCount := 0
	for scanner.Scan() {
		lineCount++
	}
	return lineCount, scanner.Err()
}

// ReadLinesInFile reads all lines from a file and returns them as a slice of
// strings, decoding a BOM-announced encoding when one is present.
func ReadLinesInFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	detectedEncoding, err := utils.DetectEncoding(filePath)
	if err != nil {
		slog.Warn("Could not detect encoding, assuming UTF-8.", "file", filePath, "error", err)
	}

	var reader io.Reader = file
	if detectedEncoding != nil {
		// Rewind so the decoder sees the BOM and strips it.
		if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
			return nil, fmt.Errorf("failed to seek file %s after encoding detection: %w", filePath, seekErr)
		}
		reader = transform.NewReader(file, detectedEncoding.NewDecoder())
	}

	var lines []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
