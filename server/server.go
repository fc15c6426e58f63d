package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"promptman/assistant"
)

//go:embed web web/*
var embeddedStatic embed.FS

const sessionCookieName = "promptman_session"

// Server は提示レイヤー向けの HTTP グルー。コアの JSON 契約だけを公開する。
type Server struct {
	workflow *assistant.Workflow
	log      *zap.SugaredLogger
	staticFS http.Handler
}

func New(workflow *assistant.Workflow, log *zap.SugaredLogger) (*Server, error) {
	if workflow == nil {
		return nil, errors.New("workflow required")
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		workflow: workflow,
		log:      log,
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/reset", s.handleReset)
	mux.HandleFunc("/api/preview", s.handlePreview)
	mux.Handle("/", s.staticHandler())
	return s.logMiddleware(mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upath := r.URL.Path
		if upath == "/" || !strings.HasPrefix(upath, "/api/") {
			if upath == "/" {
				r.URL.Path = "/index.html"
			}
			s.staticFS.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// --- Handlers ---

type analyzeReq struct {
	Theme string `json:"theme"`
	Media string `json:"media"`
}

type generateReq struct {
	IntentType         string `json:"intent_type"`
	StructureConfirmed bool   `json:"structure_confirmed"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, "POST メソッドのみ対応しています", http.StatusMethodNotAllowed)
		return
	}
	var req analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "無効な JSON 入力です", http.StatusBadRequest)
		return
	}

	sid := s.sessionID(w, r)
	result, err := s.workflow.SubmitTheme(sid, req.Theme, req.Media)
	if err != nil {
		errorResponse(w, err.Error(), statusFor(err))
		return
	}

	options := make(map[string]map[string]string, len(result.Options))
	for key, option := range result.Options {
		options[key] = map[string]string{
			"label":       option.Label,
			"description": option.Description,
		}
	}
	successResponse(w, map[string]any{
		"options":          options,
		"selection_prompt": result.SelectionPrompt,
		"detected_intent":  result.DetectedIntent,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, "POST メソッドのみ対応しています", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "無効な JSON 入力です", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.IntentType) == "" {
		errorResponse(w, "意図タイプを選択してください", http.StatusBadRequest)
		return
	}

	sid, ok := s.existingSessionID(r)
	if !ok {
		errorResponse(w, "セッションが存在しません。最初から操作をやり直してください", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	if !req.StructureConfirmed {
		proposed, err := s.workflow.SelectIntent(ctx, sid, req.IntentType)
		if err != nil {
			errorResponse(w, err.Error(), statusFor(err))
			return
		}
		successResponse(w, map[string]any{
			"needs_confirmation":   true,
			"structure":            proposed.Structure,
			"media":                string(proposed.Medium),
			"theme":                proposed.Theme,
			"confirmation_message": proposed.ConfirmationMessage,
		})
		return
	}

	// 確定時はユーザーが見た提案済み構成をそのまま使う。
	// 意図タイプが変わっていた場合だけ提案し直す。
	if !s.workflow.Proposed(sid, req.IntentType) {
		if _, err := s.workflow.SelectIntent(ctx, sid, req.IntentType); err != nil {
			errorResponse(w, err.Error(), statusFor(err))
			return
		}
	}

	final, err := s.workflow.ConfirmStructure(sid)
	if err != nil {
		errorResponse(w, "プロンプト生成に失敗しました: "+err.Error(), http.StatusInternalServerError)
		return
	}
	successResponse(w, map[string]any{
		"executable_prompt": final.ExecutablePrompt,
		"media":             string(final.Medium),
		"theme":             final.Theme,
		"structure":         final.Structure,
		"intent_type":       final.IntentKey,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, "POST メソッドのみ対応しています", http.StatusMethodNotAllowed)
		return
	}
	if sid, ok := s.existingSessionID(r); ok {
		s.workflow.Reset(sid)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	successResponse(w, map[string]any{"reset": true})
}

// handlePreview は確定済みプロンプトを HTML で返す（表示用途）。
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorResponse(w, "GET メソッドのみ対応しています", http.StatusMethodNotAllowed)
		return
	}
	sid, ok := s.existingSessionID(r)
	if !ok {
		errorResponse(w, "セッションが存在しません。最初から操作をやり直してください", http.StatusBadRequest)
		return
	}
	sess, ok := s.workflow.Finalized(sid)
	if !ok {
		errorResponse(w, "実行用プロンプトがまだ生成されていません", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(sess.ExecutablePrompt), &buf); err != nil {
		errorResponse(w, "プレビューの生成に失敗しました", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// --- Helpers ---

// sessionID は cookie のセッションIDを返す。なければ採番して cookie を発行する。
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
	})
	return sid
}

func (s *Server) existingSessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func statusFor(err error) int {
	var validation *assistant.ValidationError
	var state *assistant.SessionStateError
	var medium *assistant.UnknownMediumError
	var intent *assistant.UnknownIntentError
	switch {
	case errors.As(err, &validation), errors.As(err, &state),
		errors.As(err, &medium), errors.As(err, &intent):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func successResponse(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func errorResponse(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if s.log != nil {
			s.log.Infow("http",
				"method", r.Method, "path", r.URL.Path,
				"status", rec.status, "duration", time.Since(start))
		}
	})
}
