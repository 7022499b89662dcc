package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authsvc "github.com/bazarhat/backend/internal/services/auth"
	msgsvc "github.com/bazarhat/backend/internal/services/messaging"
	"github.com/bazarhat/backend/internal/transport/http/dto"
	httperrors "github.com/bazarhat/backend/internal/transport/http/errors"
)

type MessagingHandler struct {
	messaging *msgsvc.Service
}

func NewMessagingHandler(messagingService *msgsvc.Service) *MessagingHandler {
	return &MessagingHandler{messaging: messagingService}
}

func (h *MessagingHandler) Start(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_AD_ID", "ad id must be a uuid")
		return
	}

	var req dto.StartConversationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	conv, msg, err := h.messaging.Start(r.Context(), adID, identity.UserID, req.Body)
	if err != nil {
		handleMessagingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.StartConversationResponse{
		Conversation: dto.NewConversationResponse(conv),
		Message:      dto.NewMessageResponse(msg),
	})
}

func (h *MessagingHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	conversations, err := h.messaging.ListConversations(r.Context(), identity.UserID, parsePage(r.URL.Query().Get("page")))
	if err != nil {
		handleMessagingError(w, err)
		return
	}

	out := make([]dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, dto.NewConversationResponse(c))
	}
	httperrors.Write(w, http.StatusOK, out)
}

// Read returns a page of messages and marks the counterpart's messages read.
func (h *MessagingHandler) Read(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	conversationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_CONVERSATION_ID", "conversation id must be a uuid")
		return
	}

	messages, err := h.messaging.Read(r.Context(), conversationID, identity.UserID, parsePage(r.URL.Query().Get("page")))
	if err != nil {
		handleMessagingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewMessageResponses(messages))
}

func (h *MessagingHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	conversationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "INVALID_CONVERSATION_ID", "conversation id must be a uuid")
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	msg, err := h.messaging.Send(r.Context(), conversationID, identity.UserID, req.Body)
	if err != nil {
		handleMessagingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewMessageResponse(msg))
}

func (h *MessagingHandler) Unread(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	count, err := h.messaging.UnreadCount(r.Context(), identity.UserID)
	if err != nil {
		handleMessagingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func handleMessagingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, msgsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, msgsvc.ErrSelfEnquiry):
		writeBadRequest(w, "SELF_ENQUIRY", "cannot message your own ad")
	case errors.Is(err, msgsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "conversation or ad not found")
	case errors.Is(err, msgsvc.ErrNotMember):
		writeForbidden(w, "NOT_MEMBER", "not a member of this conversation")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
