package telegram

import (
	"context"
	"testing"
	"time"

	"borgo/internal/core/domain"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events chan *domain.Event
}

func (s *recordingSink) HandleEvent(_ context.Context, ev *domain.Event) error {
	s.events <- ev
	return nil
}

const ownerID = int64(1234)

func newTestHandler() (*Handler, *recordingSink) {
	sink := &recordingSink{events: make(chan *domain.Event, 1)}
	return NewHandler(sink, ownerID), sink
}

func receive(t *testing.T, sink *recordingSink) *domain.Event {
	t.Helper()

	select {
	case ev := <-sink.events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return nil
	}
}

func TestHandleMapsOwnMessage(t *testing.T) {
	handler, sink := newTestHandler()

	handler.Handle(context.Background(), nil, &models.Update{
		Message: &models.Message{
			ID:   42,
			From: &models.User{ID: ownerID, Username: "owner"},
			Chat: models.Chat{ID: 7},
			Text: "/ping",
		},
	})

	ev := receive(t, sink)
	assert.Equal(t, domain.EventMessage, ev.Kind)

	require.NotNil(t, ev.Message)
	assert.Equal(t, 42, ev.Message.ID)
	assert.Equal(t, int64(7), ev.Message.ChatID)
	assert.Equal(t, "/ping", ev.Message.Text)
	assert.Equal(t, "@owner", ev.Message.SenderName)
	assert.True(t, ev.Message.Outgoing)
	assert.False(t, ev.Message.ViaBot)
}

func TestHandleMapsForeignAndInlineMessages(t *testing.T) {
	handler, sink := newTestHandler()

	handler.Handle(context.Background(), nil, &models.Update{
		Message: &models.Message{
			ID:     1,
			From:   &models.User{ID: 999, FirstName: "Someone"},
			Chat:   models.Chat{ID: 7},
			Text:   "hello",
			ViaBot: &models.User{ID: 555},
		},
	})

	ev := receive(t, sink)
	assert.False(t, ev.Message.Outgoing)
	assert.True(t, ev.Message.ViaBot)
	assert.Equal(t, "Someone", ev.Message.SenderName)
}

func TestHandleMapsReply(t *testing.T) {
	handler, sink := newTestHandler()

	handler.Handle(context.Background(), nil, &models.Update{
		Message: &models.Message{
			ID:   2,
			From: &models.User{ID: ownerID},
			Chat: models.Chat{ID: 7},
			Text: "/ask",
			ReplyToMessage: &models.Message{
				ID:   1,
				From: &models.User{ID: 999},
				Text: "quoted",
			},
		},
	})

	ev := receive(t, sink)
	require.NotNil(t, ev.Message.ReplyTo)
	assert.Equal(t, 1, ev.Message.ReplyTo.MessageID)
	assert.Equal(t, "quoted", ev.Message.ReplyTo.Text)
	assert.Equal(t, int64(999), ev.Message.ReplyTo.SenderID)
}

func TestHandleMapsEditedMessage(t *testing.T) {
	handler, sink := newTestHandler()

	handler.Handle(context.Background(), nil, &models.Update{
		EditedMessage: &models.Message{
			ID:   3,
			From: &models.User{ID: ownerID},
			Chat: models.Chat{ID: 7},
			Text: "edited",
		},
	})

	ev := receive(t, sink)
	assert.Equal(t, domain.EventMessageEdit, ev.Kind)
	assert.Equal(t, "edited", ev.Message.Text)
}

func TestHandleMapsChatAction(t *testing.T) {
	handler, sink := newTestHandler()

	handler.Handle(context.Background(), nil, &models.Update{
		Message: &models.Message{
			ID:             4,
			Chat:           models.Chat{ID: 7},
			NewChatMembers: []models.User{{ID: 999}},
		},
	})

	ev := receive(t, sink)
	assert.Equal(t, domain.EventChatAction, ev.Kind)
}

func TestHandleIgnoresUnsupportedUpdates(t *testing.T) {
	handler, sink := newTestHandler()

	handler.Handle(context.Background(), nil, &models.Update{})

	select {
	case <-sink.events:
		t.Fatal("unexpected event for empty update")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandleMapsCaptionAndPhoto(t *testing.T) {
	handler, sink := newTestHandler()

	handler.Handle(context.Background(), nil, &models.Update{
		Message: &models.Message{
			ID:      5,
			From:    &models.User{ID: ownerID},
			Chat:    models.Chat{ID: 7},
			Caption: "/scale 50",
			Photo:   []models.PhotoSize{{FileID: "small"}, {FileID: "big"}},
		},
	})

	ev := receive(t, sink)
	assert.Equal(t, "/scale 50", ev.Message.Text)
	assert.Equal(t, "big", ev.Message.FileID)
}
