package chat

import (
	"context"

	"messaging-app-server/internal/models"
)

// ThreadNode is one message in a reply tree together with its replies,
// ordered by creation time ascending.
type ThreadNode struct {
	Message models.Message `json:"message"`
	Replies []*ThreadNode  `json:"replies"`
}

// ThreadRoot walks the parent chain upward from the given message and
// returns the root of its thread. A visited set bounds the walk: a cyclic
// parent chain yields ErrCyclicThread instead of looping forever.
func (s *Service) ThreadRoot(ctx context.Context, messageID string) (*models.Message, error) {
	current, err := s.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{current.ID: true}
	for current.ParentID != nil {
		parent, err := s.GetMessage(ctx, *current.ParentID)
		if err != nil {
			return nil, err
		}
		if visited[parent.ID] {
			return nil, ErrCyclicThread
		}
		visited[parent.ID] = true
		current = parent
	}
	return current, nil
}

// BuildReplyTree assembles the full reply tree below the given root message.
// Children are loaded one level at a time with a single query per level
// (batched by parent ids), never per node, and ordered created_at ascending.
func (s *Service) BuildReplyTree(ctx context.Context, rootID string) (*ThreadNode, error) {
	root, err := s.GetMessage(ctx, rootID)
	if err != nil {
		return nil, err
	}

	rootNode := &ThreadNode{Message: *root, Replies: []*ThreadNode{}}
	nodesByID := map[string]*ThreadNode{root.ID: rootNode}
	frontier := []string{root.ID}

	for len(frontier) > 0 {
		var children []models.Message
		err := s.DB.WithContext(ctx).
			Where("conversation_id = ? AND parent_id IN ?", root.ConversationID, frontier).
			Order("created_at asc, id asc").
			Find(&children).Error
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			// A message already placed in the tree means the parent chain
			// loops; stop rather than re-fetch it forever
			if _, seen := nodesByID[child.ID]; seen {
				return nil, ErrCyclicThread
			}
			node := &ThreadNode{Message: child, Replies: []*ThreadNode{}}
			nodesByID[child.ID] = node
			parent := nodesByID[*child.ParentID]
			parent.Replies = append(parent.Replies, node)
			frontier = append(frontier, child.ID)
		}
	}
	return rootNode, nil
}

// CountThreadMessages returns the number of messages in the tree: the node
// itself plus all of its replies, recursively. It always equals the node
// count of the tree BuildReplyTree produces for the same root.
func CountThreadMessages(node *ThreadNode) int {
	if node == nil {
		return 0
	}
	count := 1
	for _, reply := range node.Replies {
		count += CountThreadMessages(reply)
	}
	return count
}
