package mentions

import (
	"testing"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	assert.Nil(t, Extract("no mentions here"))
	assert.Equal(t, []string{"alice"}, Extract("@alice nice work"))
	assert.Equal(t, []string{"alice", "bob"}, Extract("cc @alice and @bob"))
	assert.Equal(t, []string{"a.b_c9"}, Extract("hey @a.b_c9!"))
}

func TestExtractDeduplicatesKeepingFirstAppearance(t *testing.T) {
	assert.Equal(t, []string{"bob", "alice"}, Extract("@bob @alice @bob again"))
}

func TestLead(t *testing.T) {
	username, remainder, ok := Lead("@alice nice work")
	assert.True(t, ok)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "nice work", remainder)

	_, remainder, ok = Lead("nice work @alice")
	assert.False(t, ok)
	assert.Equal(t, "nice work @alice", remainder)
}

func TestSuggestFiltersBySubstring(t *testing.T) {
	followings := []models.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "malice"},
		{ID: 3, Username: "bob", FirstName: "Alice"},
		{ID: 4, Username: "carol"},
	}

	got := Suggest(followings, "ali")
	assert.Len(t, got, 3)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, "malice", got[1].Username)
	assert.Equal(t, "bob", got[2].Username) // matched via display name

	// Case-insensitive, leading @ ignored
	assert.Len(t, Suggest(followings, "@ALI"), 3)
}

func TestSuggestEmptyPartialReturnsAll(t *testing.T) {
	followings := []models.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}
	assert.Len(t, Suggest(followings, ""), 2)
}

func TestSuggestNoMatches(t *testing.T) {
	followings := []models.User{{ID: 1, Username: "alice"}}
	got := Suggest(followings, "zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
