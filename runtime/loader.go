package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"

	"studio-chat/errors"
)

// WordlistData carries the parsed wordlist plus metadata for startup logging.
type WordlistData struct {
	Words     []string
	Languages []string
}

// WordlistLoader reads censored words from embedded dictionary files.
type WordlistLoader struct {
	fs embed.FS
}

func NewWordlistLoader(f embed.FS) *WordlistLoader {
	return &WordlistLoader{fs: f}
}

// LoadAll scans the given directory in the embedded FS, treating each .txt
// file as one language dictionary, and merges their contents into a unique
// word list.
func (l *WordlistLoader) LoadAll(path string) (*WordlistData, error) {
	entries, err := fs.ReadDir(l.fs, path)
	if err != nil {
		return nil, err
	}

	var languages []string
	uniqueWords := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// The filename names the language ("en.txt" -> "en").
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := l.fs.ReadFile(path + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// A scanner handles both \n and \r\n line endings.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				uniqueWords[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(uniqueWords) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := make([]string, 0, len(uniqueWords))
	for w := range uniqueWords {
		words = append(words, w)
	}

	return &WordlistData{Words: words, Languages: languages}, nil
}
