package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ilanver/pkg/types"
)

func (c *Client) Conversations(ctx context.Context) ([]types.Conversation, error) {
	var out []conversationDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/messages", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}

	conversations := make([]types.Conversation, 0, len(out))
	for _, d := range out {
		conversations = append(conversations, d.toDomain())
	}
	return conversations, nil
}

func (c *Client) Messages(ctx context.Context, conversationID string) ([]types.Message, error) {
	var out []messageDTO
	err := c.doJSON(ctx, http.MethodGet, "/api/messages/"+url.PathEscape(conversationID), nil, nil, &out)
	if IsStatus(err, http.StatusNotFound) {
		return nil, types.ErrConversationGone
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages of %s: %w", conversationID, err)
	}

	messages := make([]types.Message, 0, len(out))
	for _, d := range out {
		messages = append(messages, d.toDomain())
	}
	return messages, nil
}

func (c *Client) SendMessage(ctx context.Context, conversationID string, msg types.NewMessage) (*types.Message, error) {
	var out messageDTO
	err := c.doJSON(ctx, http.MethodPost, "/api/messages/"+url.PathEscape(conversationID), nil, msg, &out)
	if IsStatus(err, http.StatusNotFound) {
		return nil, types.ErrConversationGone
	}
	if err != nil {
		return nil, fmt.Errorf("failed to send message to %s: %w", conversationID, err)
	}

	sent := out.toDomain()
	return &sent, nil
}
