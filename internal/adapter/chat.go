package adapter

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ogdevs/backoffice-client/models"
)

type chatRooms struct {
	rest *RESTClient
}

// NewChatRooms returns the [ChatRooms] backed by the /chat endpoints.
func NewChatRooms(rest *RESTClient) ChatRooms {
	return &chatRooms{rest: rest}
}

func (c *chatRooms) Rooms(ctx context.Context) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := c.json(ctx, http.MethodGet, "/chat/rooms", nil, &rooms, "Rooms")
	return rooms, err
}

func (c *chatRooms) LastMessages(ctx context.Context, roomIDs []int64) ([]models.ChatMessage, error) {
	req, err := c.rest.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(roomIDs))
	for _, id := range roomIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	var messages []models.ChatMessage
	req.SetQueryParamsFromValues(map[string][]string{"chatRoomIds": ids}).SetResult(&messages)

	if _, err = c.rest.do(req, http.MethodGet, "/chat/rooms/last", "LastMessages"); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *chatRooms) Messages(ctx context.Context, roomID int64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	path := "/chat/rooms/" + strconv.FormatInt(roomID, 10) + "/messages"
	err := c.json(ctx, http.MethodGet, path, nil, &messages, "Messages")
	return messages, err
}

func (c *chatRooms) CreateRoom(ctx context.Context, request models.ChatRoomCreationRequest) (models.ChatRoom, error) {
	var room models.ChatRoom
	err := c.json(ctx, http.MethodPost, "/chat/rooms/create", request, &room, "CreateRoom")
	return room, err
}

func (c *chatRooms) JoinRoom(ctx context.Context, roomID int64) (models.ChatRoom, error) {
	var room models.ChatRoom
	err := c.json(ctx, http.MethodPost, "/chat/rooms/join", models.ChatRoom{ID: roomID}, &room, "JoinRoom")
	return room, err
}

func (c *chatRooms) LeaveRoom(ctx context.Context, roomID int64) error {
	body := map[string]int64{"id": roomID}
	return c.json(ctx, http.MethodPost, "/chat/rooms/leave", body, nil, "LeaveRoom")
}

func (c *chatRooms) DeleteRoom(ctx context.Context, roomID int64) error {
	return c.json(ctx, http.MethodDelete, "/chat/rooms/"+strconv.FormatInt(roomID, 10), nil, nil, "DeleteRoom")
}

func (c *chatRooms) MarkAsRead(ctx context.Context, messageID int64) error {
	path := "/chat/messages/mark-as-read/" + strconv.FormatInt(messageID, 10)
	return c.json(ctx, http.MethodPost, path, nil, nil, "MarkAsRead")
}

func (c *chatRooms) json(ctx context.Context, method, path string, body, result any, op string) error {
	req, err := c.rest.authedRequest(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	_, err = c.rest.do(req, method, path, op)
	return err
}
