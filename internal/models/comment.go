package models

import "time"

// Comment represents a comment on a showcase. A non-nil ParentID makes it a
// reply; ParentID must reference a comment on the same showcase.
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ShowcaseID uint      `json:"showcase_id" gorm:"index"`
	UserID     uint      `json:"user_id" gorm:"index"`
	ParentID   *uint     `json:"parent_id,omitempty" gorm:"index"` // nil for top-level comments
	IsReply    bool      `json:"is_reply" gorm:"default:false"`
	Content    string    `json:"content" gorm:"type:text"`
	LikesCount int       `json:"likes_count" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommentNode is a comment with its nested replies attached
type CommentNode struct {
	Comment
	Replies []CommentNode `json:"replies"`
}

// BuildCommentTree assembles a flat set of comment rows into a tree of
// top-level comments with nested replies. Grouping is by id equality only, so
// any input order produces the same tree; sibling order is the input order.
// Single pass over the rows, then recursive assembly from the grouping map.
func BuildCommentTree(comments []Comment) []CommentNode {
	children := make(map[uint][]Comment, len(comments))
	var roots []Comment
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var attach func(c Comment) CommentNode
	attach = func(c Comment) CommentNode {
		node := CommentNode{Comment: c, Replies: []CommentNode{}}
		for _, child := range children[c.ID] {
			node.Replies = append(node.Replies, attach(child))
		}
		return node
	}

	nodes := make([]CommentNode, 0, len(roots))
	for _, r := range roots {
		nodes = append(nodes, attach(r))
	}
	return nodes
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CreateReplyRequest defines the request body for replying to a comment
type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// BatchCommentsRequest defines the request body for fetching comment trees
// across several showcases at once
type BatchCommentsRequest struct {
	ShowcaseIDs []uint `json:"showcase_ids" validate:"required,min=1,max=100"`
}
