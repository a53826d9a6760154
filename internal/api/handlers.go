package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"formrehberim.com/form-guide/internal/catalog"
	"formrehberim.com/form-guide/internal/core"
	"formrehberim.com/form-guide/internal/i18n"
	"formrehberim.com/form-guide/internal/logger"
	"formrehberim.com/form-guide/internal/store"
)

const sessionCookieName = "fg_session"

type sessionKeyType struct{}

var sessionKey sessionKeyType

type APIHandler struct {
	chatService *core.ChatService
	docsDir     string
	templates   *pageTemplates
}

func NewAPIHandler(cs *core.ChatService, docsDir string) *APIHandler {
	return &APIHandler{
		chatService: cs,
		docsDir:     docsDir,
		templates:   parseTemplates(),
	}
}

// SessionMiddleware binds each request to a session: an opaque UUID cookie
// on the client, state in the store. Created on first request.
func (h *APIHandler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			sessionID = cookie.Value
		}
		if uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess, err := h.chatService.GetOrCreateSession(sessionID)
		if err != nil {
			slog.Error("failed to initialize session", "sessionID", sessionID, logger.Err(err))
			http.Error(w, "Failed to initialize session", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestSession(r *http.Request) *store.Session {
	return r.Context().Value(sessionKey).(*store.Session)
}

func (h *APIHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	h.renderChat(w, sess, "")
}

// PostMessageHandler handles one chat turn and re-renders the page with the
// updated history.
func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	question := r.FormValue("question")

	lang := i18n.MustPack(sess.Lang)
	if _, err := h.chatService.HandleTurn(r.Context(), sess.ID, lang, question); err != nil {
		slog.Error("failed to handle turn", "session", sess.ID, logger.Err(err))
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}

	h.renderChat(w, sess, question)
}

func (h *APIHandler) ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)

	if err := h.chatService.ClearHistory(sess.ID); err != nil {
		slog.Error("failed to clear chat", "session", sess.ID, logger.Err(err))
		http.Error(w, "Failed to clear chat", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *APIHandler) ExerciseListHandler(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)

	data := pageData{
		Lang:      i18n.MustPack(sess.Lang),
		Exercises: catalog.List(h.docsDir),
	}
	h.templates.render(w, "exercises", data)
}

func (h *APIHandler) AboutHandler(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	h.templates.render(w, "about", pageData{Lang: i18n.MustPack(sess.Lang)})
}

// SetLanguageHandler switches the session language when the code is
// recognized, otherwise does nothing, then returns to the referring page.
func (h *APIHandler) SetLanguageHandler(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	code := chi.URLParam(r, "code")

	if err := h.chatService.SetLanguage(sess.ID, code); err != nil {
		slog.Error("failed to set language", "session", sess.ID, "code", code, logger.Err(err))
	}

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *APIHandler) renderChat(w http.ResponseWriter, sess *store.Session, question string) {
	history, err := h.chatService.History(sess.ID)
	if err != nil {
		slog.Error("failed to load history", "session", sess.ID, logger.Err(err))
		http.Error(w, "Failed to load chat history", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Lang:     i18n.MustPack(sess.Lang),
		History:  history,
		Question: question,
	}
	h.templates.render(w, "index", data)
}
