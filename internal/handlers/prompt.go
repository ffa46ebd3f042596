package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mindtracker/internal/service"
)

const defaultPromptMood = "neutral"

type promptRequest struct {
	Mood string `json:"mood"`
}

type promptResponse struct {
	Prompt   string `json:"prompt"`
	PromptID int64  `json:"prompt_id"`
}

// feedback is "up" for a positive vote; any other value, or none, is a down vote
type feedbackRequest struct {
	PromptID any `json:"prompt_id"`
	Feedback any `json:"feedback"`
}

type PromptHandler struct {
	prompts *service.Prompts
	logger  *zap.Logger
}

func NewPromptHandler(prompts *service.Prompts, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{prompts: prompts, logger: logger}
}

// HandlePrompt: POST /prompt {mood} -> {prompt, prompt_id}. Generation problems never reach the client.
func (ph *PromptHandler) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	op := "handlers.PromptHandler.HandlePrompt"

	req := decodeBody[promptRequest](r, ph.logger, op)

	mood := req.Mood
	if strings.TrimSpace(mood) == "" {
		mood = defaultPromptMood
	}

	prompt, err := ph.prompts.GeneratePrompt(r.Context(), mood)
	if err != nil {
		ph.logger.Error("couldnt save prompt", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save prompt", ph.logger, op)
		return
	}

	writeJSON(w, http.StatusOK, promptResponse{Prompt: prompt.Text, PromptID: prompt.ID}, ph.logger, op)
}

func (ph *PromptHandler) HandlePromptHistory(w http.ResponseWriter, r *http.Request) {
	op := "handlers.PromptHandler.HandlePromptHistory"

	prompts, err := ph.prompts.History(r.Context())
	if err != nil {
		ph.logger.Error("couldnt get prompts", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load prompts", ph.logger, op)
		return
	}

	writeJSON(w, http.StatusOK, prompts, ph.logger, op)
}

// HandleLastPrompt answers 404 with an empty object when nothing was generated yet.
func (ph *PromptHandler) HandleLastPrompt(w http.ResponseWriter, r *http.Request) {
	op := "handlers.PromptHandler.HandleLastPrompt"

	prompt, err := ph.prompts.LastPrompt(r.Context())
	if service.IsNotFound(err) {
		writeJSON(w, http.StatusNotFound, struct{}{}, ph.logger, op)
		return
	}
	if err != nil {
		ph.logger.Error("couldnt get last prompt", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load prompt", ph.logger, op)
		return
	}

	writeJSON(w, http.StatusOK, prompt, ph.logger, op)
}

func (ph *PromptHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	op := "handlers.PromptHandler.HandleFeedback"

	req := decodeBody[feedbackRequest](r, ph.logger, op)

	vote, _ := req.Feedback.(string)
	if err := ph.prompts.RecordFeedback(r.Context(), int64Value(req.PromptID), vote == "up"); err != nil {
		ph.logger.Error("couldnt save feedback", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save feedback", ph.logger, op)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, ph.logger, op)
}
