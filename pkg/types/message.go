package types

import "time"

type Conversation struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listingId"`
	ListingTitle string    `json:"listingTitle"`
	OtherParty   string    `json:"otherParty"`
	LastMessage  string    `json:"lastMessage"`
	UnreadCount  int       `json:"unreadCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sentAt"`
}

type NewMessage struct {
	Body string `form:"body" validate:"required,max=2000" json:"body"`
}
