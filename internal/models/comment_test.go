package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildCommentTreeNestsReplies(t *testing.T) {
	comments := []Comment{
		{ID: 1, ShowcaseID: 10, Content: "first"},
		{ID: 2, ShowcaseID: 10, Content: "second"},
		{ID: 3, ShowcaseID: 10, ParentID: uintPtr(1), IsReply: true, Content: "reply to first"},
		{ID: 4, ShowcaseID: 10, ParentID: uintPtr(1), IsReply: true, Content: "another reply to first"},
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 2)
	assert.Equal(t, uint(1), tree[0].ID)
	assert.Equal(t, uint(2), tree[1].ID)
	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, uint(3), tree[0].Replies[0].ID)
	assert.Equal(t, uint(4), tree[0].Replies[1].ID)
	assert.Empty(t, tree[1].Replies)
}

func TestBuildCommentTreeOrderIndependent(t *testing.T) {
	// Replies appearing before their parents must still attach
	comments := []Comment{
		{ID: 3, ParentID: uintPtr(1), IsReply: true},
		{ID: 1},
		{ID: 2, ParentID: uintPtr(1), IsReply: true},
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, uint(3), tree[0].Replies[0].ID)
	assert.Equal(t, uint(2), tree[0].Replies[1].ID)
}

func TestBuildCommentTreeDeepNesting(t *testing.T) {
	comments := []Comment{
		{ID: 1},
		{ID: 2, ParentID: uintPtr(1), IsReply: true},
		{ID: 3, ParentID: uintPtr(2), IsReply: true},
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, uint(3), tree[0].Replies[0].Replies[0].ID)
}

func TestBuildCommentTreeDropsOrphans(t *testing.T) {
	comments := []Comment{
		{ID: 1},
		{ID: 2, ParentID: uintPtr(99), IsReply: true},
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 1)
	assert.Equal(t, uint(1), tree[0].ID)
	assert.Empty(t, tree[0].Replies)
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	tree := BuildCommentTree(nil)
	assert.Empty(t, tree)
}

func TestBuildCommentTreeRepliesNeverNil(t *testing.T) {
	tree := BuildCommentTree([]Comment{{ID: 1}})
	require.Len(t, tree, 1)
	// Serializes as [] rather than null
	assert.NotNil(t, tree[0].Replies)
}

func TestMediaTypeFromMIME(t *testing.T) {
	assert.Equal(t, MediaGif, MediaTypeFromMIME("image/gif"))
	assert.Equal(t, MediaVideo, MediaTypeFromMIME("video/mp4"))
	assert.Equal(t, MediaImage, MediaTypeFromMIME("image/png"))
	assert.Equal(t, MediaImage, MediaTypeFromMIME("image/jpeg"))
}

func TestDisplayNameFallsBackToUsername(t *testing.T) {
	u := User{Username: "inky"}
	assert.Equal(t, "inky", u.DisplayName())

	u.FirstName = "Ada"
	assert.Equal(t, "Ada", u.DisplayName())

	u.LastName = "Lovelace"
	assert.Equal(t, "Ada Lovelace", u.DisplayName())
}
