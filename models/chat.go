package models

// ChatRoom is a chat room as listed by the chat REST endpoints.
type ChatRoom struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Users       []UserSummary `json:"users,omitempty"`
	LastMessage string        `json:"lastMessage,omitempty"`
}

// ChatMessage is a message delivered on a room topic.
type ChatMessage struct {
	ID             int64   `json:"id"`
	ChatRoomID     int64   `json:"chatRoomId"`
	ChatRoomName   *string `json:"chatRoomName"`
	SenderID       string  `json:"senderId"`
	SenderUsername string  `json:"senderUsername"`
	Content        string  `json:"content"`
	Attachment     *string `json:"attachment"`
	CreatedAt      string  `json:"createdAt"`
	Seen           bool    `json:"seen"`
}

// MessageRequest is the body published on the chat send destination.
type MessageRequest struct {
	ChatRoomID int64  `json:"chatRoomId" validate:"required"`
	Message    string `json:"message" validate:"required,max=2000"`
}

// ChatRoomCreationRequest creates a room with an initial member list.
type ChatRoomCreationRequest struct {
	Name    string   `json:"name" validate:"required,max=100"`
	UserIDs []string `json:"userIds"`
}
