package catalog

import (
	"regexp"
	"strings"
)

// FileMetadata is what the filename parser can recover about a book.
type FileMetadata struct {
	Title  string
	Author string
}

// Filename patterns, tried in order. Uploaders name files inconsistently;
// these cover the shapes seen in real catalogs.
var filenamePatterns = []struct {
	re *regexp.Regexp
	// titleSecond maps the second capture group onto the title.
	titleSecond bool
}{
	// "Author by Title"
	{regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+)$`), true},
	// "Title - Author"
	{regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`), false},
	// "Author, Title"
	{regexp.MustCompile(`^(.+?),\s*(.+)$`), true},
	// "Title (Author)"
	{regexp.MustCompile(`^(.+?)\s+\((.+?)\)$`), false},
}

// ParseFilename derives a title and author from a PDF filename. When no
// pattern matches, the whole basename becomes the title and the author is
// left as UnknownAuthor.
func ParseFilename(filename string) FileMetadata {
	name := strings.TrimSuffix(strings.TrimSuffix(filename, ".pdf"), ".PDF")
	name = strings.TrimSpace(name)

	for _, p := range filenamePatterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		first, second := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if p.titleSecond {
			return FileMetadata{Title: second, Author: first}
		}
		return FileMetadata{Title: first, Author: second}
	}

	return FileMetadata{Title: name, Author: UnknownAuthor}
}

// BaseFilename strips the books/ prefix from an S3 key, returning the bare
// filename.
func BaseFilename(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}
