package assistant

import (
	"math/rand"
	"testing"

	"library-backend/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) []*catalog.Book {
	t.Helper()

	specs := []struct {
		filename, title, author, genre string
	}{
		{"sherlock.pdf", "Sherlock Holmes", "Arthur Conan Doyle", "Mystery"},
		{"styles.pdf", "The Mysterious Affair at Styles", "Agatha Christie", "Mystery"},
		{"pride.pdf", "Pride and Prejudice", "Jane Austen", "Fiction"},
		{"time.pdf", "A Brief History of Time", "Stephen Hawking", "Science"},
	}

	books := make([]*catalog.Book, 0, len(specs))
	for _, s := range specs {
		book, err := catalog.NewBook(s.filename, s.title, s.author, s.genre, "")
		require.NoError(t, err)
		books = append(books, book)
	}
	return books
}

func newTestAssistant() *Assistant {
	return New(rand.New(rand.NewSource(1)))
}

func TestRespondGreeting(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("Hello there", nil)
	assert.Contains(t, reply.Message, "library assistant")
	assert.Empty(t, reply.Books)
}

func TestRespondFarewell(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("ok thanks, bye", nil)
	assert.Contains(t, reply.Message, "Happy reading")
}

func TestRespondFind(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("find mystery books", testCatalog(t))
	require.NotEmpty(t, reply.Books)
	for _, book := range reply.Books {
		assert.Equal(t, "Mystery", book.Genre)
	}
}

func TestRespondFindByAuthor(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("show me agatha christie", testCatalog(t))
	require.Len(t, reply.Books, 1)
	assert.Equal(t, "Agatha Christie", reply.Books[0].Author)
}

func TestRespondFindNoMatch(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("find underwater basket weaving", testCatalog(t))
	assert.Empty(t, reply.Books)
	assert.Contains(t, reply.Message, "couldn't find")
}

func TestRespondRecommend(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("recommend me something", testCatalog(t))
	assert.Len(t, reply.Books, 3)
}

func TestRespondRecommendEmptyCatalog(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("recommend me something", nil)
	assert.Empty(t, reply.Books)
	assert.Contains(t, reply.Message, "empty")
}

func TestRespondCount(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("how many books do I have?", testCatalog(t))
	assert.Contains(t, reply.Message, "4 books")
	assert.Contains(t, reply.Message, "3 genres")
}

func TestRespondGenres(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("what categories are there", testCatalog(t))
	assert.Contains(t, reply.Message, "Fiction")
	assert.Contains(t, reply.Message, "Mystery")
	assert.Contains(t, reply.Message, "Science")
}

func TestRespondGenreBrowse(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("any science reading?", testCatalog(t))
	require.Len(t, reply.Books, 1)
	assert.Equal(t, "A Brief History of Time", reply.Books[0].Title)
}

func TestRespondFallback(t *testing.T) {
	a := newTestAssistant()
	reply := a.Respond("zzz", testCatalog(t))
	assert.NotEmpty(t, reply.Message)
}
