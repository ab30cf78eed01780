// Package assistant implements the rule-based library helper exposed on
// the assistant endpoint. It answers questions about the live catalog:
// searches, genre browsing, author lookups, and recommendations.
package assistant

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"library-backend/domain/catalog"
)

// Reply is the assistant's answer to one query.
type Reply struct {
	Message string          `json:"message"`
	Books   []*catalog.Book `json:"books,omitempty"`
}

// Assistant matches user queries against intent keyword sets and answers
// from the catalog snapshot it is given.
type Assistant struct {
	rng *rand.Rand
}

// New creates an assistant. rng drives recommendation sampling; pass a
// seeded source in tests for stable output.
func New(rng *rand.Rand) *Assistant {
	return &Assistant{rng: rng}
}

var stopWords = map[string]struct{}{
	"what": {}, "is": {}, "are": {}, "the": {}, "a": {}, "an": {},
	"do": {}, "you": {}, "have": {}, "can": {}, "i": {}, "me": {}, "my": {},
}

// Respond produces an answer for the query given the current catalog.
func (a *Assistant) Respond(query string, books []*catalog.Book) Reply {
	q := strings.ToLower(strings.TrimSpace(query))

	switch {
	case containsAny(q, "hello", "hi", "hey", "good morning", "good evening", "greetings"):
		return Reply{Message: "Hello! I'm your library assistant. I can help you find books, get recommendations, or answer questions about your collection. What would you like to know?"}

	case containsAny(q, "bye", "goodbye", "see you", "thanks", "thank you"):
		return Reply{Message: "You're welcome! Happy reading. Feel free to ask me anything anytime."}

	case containsAny(q, "help", "what can you do", "how do you work", "capabilities"):
		return Reply{Message: "I can search the catalog by title, author, or genre, recommend books, list genres, and tell you how big the library is. Try \"find mystery books\" or \"recommend me something\"."}

	case containsAny(q, "find", "search", "looking for", "show me"):
		found := searchBooks(q, books)
		if len(found) == 0 {
			return Reply{Message: "I couldn't find books matching that. Try a genre, a title, or an author name."}
		}
		if len(found) > 5 {
			found = found[:5]
		}
		return Reply{
			Message: fmt.Sprintf("I found %d matching book(s) for you.", len(found)),
			Books:   found,
		}

	case containsAny(q, "recommend", "suggestion", "suggest", "what should i read"):
		picks := a.sample(books, 3)
		if len(picks) == 0 {
			return Reply{Message: "The library is empty right now, so I have nothing to recommend yet."}
		}
		return Reply{
			Message: "Here are my recommendations for you.",
			Books:   picks,
		}

	case strings.Contains(q, "how many") && strings.Contains(q, "book"):
		genres := distinctGenres(books)
		return Reply{Message: fmt.Sprintf("You currently have %d books in your library across %d genres.", len(books), len(genres))}

	case containsAny(q, "genre", "category", "categories", "types"):
		genres := distinctGenres(books)
		if len(genres) == 0 {
			return Reply{Message: "No genres yet. Upload some books to get started."}
		}
		return Reply{Message: "Your library has books in these genres: " + strings.Join(genres, ", ") + "."}

	case containsAny(q, "author", "written by", "who wrote", "writer"):
		found := searchBooks(q, books)
		if len(found) > 0 {
			authors := distinctAuthors(found)
			return Reply{
				Message: "I found books by: " + strings.Join(authors, ", ") + ".",
				Books:   found,
			}
		}
		authors := distinctAuthors(books)
		if len(authors) > 8 {
			authors = authors[:8]
		}
		if len(authors) == 0 {
			return Reply{Message: "No authors in the catalog yet."}
		}
		return Reply{Message: "The library has books by " + strings.Join(authors, ", ") + ". Which author interests you?"}
	}

	if byGenre := matchGenre(q, books); len(byGenre) > 0 {
		return Reply{
			Message: "Here is what the library has in that genre.",
			Books:   byGenre,
		}
	}

	keywords := extractKeywords(q)
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	if len(keywords) > 0 {
		return Reply{Message: "Interesting question about " + strings.Join(keywords, ", ") + ". I can help you find books by genre, author, or give recommendations. What are you interested in?"}
	}

	return Reply{Message: "I'm here to help you explore your collection. Ask me about genres, recommendations, authors, or a specific book."}
}

func containsAny(q string, phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

func searchBooks(q string, books []*catalog.Book) []*catalog.Book {
	found := make([]*catalog.Book, 0)
	for _, book := range books {
		title := strings.ToLower(book.Title)
		author := strings.ToLower(book.Author)
		genre := strings.ToLower(book.Genre)
		if (title != "" && strings.Contains(q, title)) ||
			(author != "" && strings.Contains(q, author)) ||
			(genre != "" && strings.Contains(q, genre)) {
			found = append(found, book)
			continue
		}
		for _, keyword := range extractKeywords(q) {
			if book.Matches(keyword) {
				found = append(found, book)
				break
			}
		}
	}
	return found
}

func matchGenre(q string, books []*catalog.Book) []*catalog.Book {
	matched := make([]*catalog.Book, 0)
	for _, book := range books {
		genre := strings.ToLower(book.Genre)
		if genre != "" && strings.Contains(q, genre) {
			matched = append(matched, book)
		}
	}
	return matched
}

func (a *Assistant) sample(books []*catalog.Book, n int) []*catalog.Book {
	if len(books) <= n {
		return append([]*catalog.Book(nil), books...)
	}
	perm := a.rng.Perm(len(books))
	picks := make([]*catalog.Book, n)
	for i := 0; i < n; i++ {
		picks[i] = books[perm[i]]
	}
	return picks
}

func distinctGenres(books []*catalog.Book) []string {
	seen := make(map[string]struct{})
	for _, book := range books {
		if book.Genre != "" {
			seen[book.Genre] = struct{}{}
		}
	}
	genres := make([]string, 0, len(seen))
	for genre := range seen {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres
}

func distinctAuthors(books []*catalog.Book) []string {
	seen := make(map[string]struct{})
	for _, book := range books {
		if book.Author != "" && book.Author != catalog.UnknownAuthor {
			seen[book.Author] = struct{}{}
		}
	}
	authors := make([]string, 0, len(seen))
	for author := range seen {
		authors = append(authors, author)
	}
	sort.Strings(authors)
	return authors
}

func extractKeywords(q string) []string {
	words := strings.Fields(q)
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if len(word) <= 2 {
			continue
		}
		if _, skip := stopWords[word]; skip {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}
