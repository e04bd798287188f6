package classifier

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// synsetPrefix matches the WordNet ID that prefixes each line in ImageNet
// synset label files ("n01440764 tench, Tinca tinca").
var synsetPrefix = regexp.MustCompile(`^n\d{8}\s+`)

// loadLabels reads the class label file, one label per line. Synset ID
// prefixes are stripped; blank lines are skipped. The line index is the
// class index.
func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		labels = append(labels, synsetPrefix.ReplaceAllString(line, ""))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read label file: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("label file %s is empty", path)
	}
	return labels, nil
}
