package util

import "regexp"

// CodeBlock is a fenced code block extracted from markdown text.
type CodeBlock struct {
	Language string
	Code     string
}

var codeBlockRegexp = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)\\n```")

// ExtractCodeBlocks returns all fenced code blocks found in markdown text,
// with their language tags. Blocks without a tag get language "text".
func ExtractCodeBlocks(text string) []CodeBlock {
	matches := codeBlockRegexp.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		language := m[1]
		if language == "" {
			language = "text"
		}
		blocks = append(blocks, CodeBlock{Language: language, Code: m[2]})
	}
	return blocks
}
