package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchBooksQueryValidate(t *testing.T) {
	// No criteria is a valid search: it returns the full catalog.
	assert.NoError(t, SearchBooksQuery{}.Validate())

	assert.NoError(t, SearchBooksQuery{Query: "dune", Limit: 10}.Validate())
	assert.Error(t, SearchBooksQuery{Limit: -1}.Validate())
}

func TestListBooksQueryValidate(t *testing.T) {
	assert.NoError(t, ListBooksQuery{}.Validate())
	assert.Error(t, ListBooksQuery{Limit: -1}.Validate())
}
