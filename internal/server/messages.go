package server

import (
	"errors"
	"net/http"
	"strings"

	"ilanver/internal/listing"
	"ilanver/pkg/types"
)

func (s *Service) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &types.MessagesPageData{
		BasePageData: types.BasePageData{Title: "Mesajlar"},
	}

	conversations, err := s.backend.Conversations(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load conversations")
		data.Error = "Mesajlar yüklenemedi."
		conversations = []types.Conversation{}
	}
	data.Conversations = conversations

	if err := s.renderTemplate(w, r, "page.messages", data); err != nil {
		s.logger.WithError(err).Error("failed to render messages page")
		s.internalServerError(w)
	}
}

func (s *Service) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := strings.TrimSpace(r.PathValue("conversationID"))

	data := &types.ConversationPageData{
		BasePageData:   types.BasePageData{Title: "Mesajlar"},
		ConversationID: conversationID,
		FieldErrors:    map[string]string{},
	}

	s.renderConversation(w, r, http.StatusOK, data)
}

func (s *Service) handlePostConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conversationID := strings.TrimSpace(r.PathValue("conversationID"))

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var msg types.NewMessage
	if err := decoder.Decode(&msg, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode message form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	msg.Body = strings.TrimSpace(msg.Body)

	if errs := listing.ValidateStruct(msg); len(errs) > 0 {
		data := &types.ConversationPageData{
			BasePageData:   types.BasePageData{Title: "Mesajlar"},
			ConversationID: conversationID,
			FieldErrors:    errs,
		}
		s.renderConversation(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if _, err := s.backend.SendMessage(ctx, conversationID, msg); err != nil {
		if errors.Is(err, types.ErrConversationGone) {
			s.notFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("conversation_id", conversationID).Error("failed to send message")
		s.redirectWithError(w, r, "/messages/"+conversationID, "Mesaj gönderilemedi.")
		return
	}

	http.Redirect(w, r, "/messages/"+conversationID, http.StatusSeeOther)
}

// renderConversation loads the thread into data and renders it.
func (s *Service) renderConversation(w http.ResponseWriter, r *http.Request, status int, data *types.ConversationPageData) {
	messages, err := s.backend.Messages(r.Context(), data.ConversationID)
	if err != nil {
		if errors.Is(err, types.ErrConversationGone) {
			s.notFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("conversation_id", data.ConversationID).Error("failed to load messages")
		data.Error = "Mesajlar yüklenemedi."
		messages = []types.Message{}
	}
	data.Messages = messages

	if err := s.renderTemplateStatus(w, r, status, "page.conversation", data); err != nil {
		s.logger.WithError(err).Error("failed to render conversation page")
		s.internalServerError(w)
	}
}
