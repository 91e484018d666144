package runtime

import "embed"

//go:embed censored/*
var censoredFolder embed.FS

// LoadCensoredWords loads the embedded moderation dictionaries.
func LoadCensoredWords() (*WordlistData, error) {
	return NewWordlistLoader(censoredFolder).LoadAll("censored")
}
