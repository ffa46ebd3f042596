package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"mindtracker/internal/service"
)

type sentimentRequest struct {
	Text string `json:"text"`
}

type entryRequest struct {
	Entry string `json:"entry"`
}

type recommendRequest struct {
	Mood   string   `json:"mood"`
	Habits []string `json:"habits"`
}

type recommendResponse struct {
	Recommendations []string `json:"recommendations"`
}

type JournalHandler struct {
	journal *service.Journal
	logger  *zap.Logger
}

func NewJournalHandler(journal *service.Journal, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{journal: journal, logger: logger}
}

// HandleSentiment: POST /sentiment {text} -> {neg, neu, pos, compound}
func (jh *JournalHandler) HandleSentiment(w http.ResponseWriter, r *http.Request) {
	op := "handlers.JournalHandler.HandleSentiment"

	req := decodeBody[sentimentRequest](r, jh.logger, op)

	writeJSON(w, http.StatusOK, jh.journal.Sentiment(req.Text), jh.logger, op)
}

// HandleMood: POST /mood {entry} -> {mood, neg, neu, pos, compound}
func (jh *JournalHandler) HandleMood(w http.ResponseWriter, r *http.Request) {
	op := "handlers.JournalHandler.HandleMood"

	req := decodeBody[entryRequest](r, jh.logger, op)

	writeJSON(w, http.StatusOK, jh.journal.Mood(req.Entry), jh.logger, op)
}

func (jh *JournalHandler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	op := "handlers.JournalHandler.HandleCreateEntry"

	req := decodeBody[entryRequest](r, jh.logger, op)

	entry, err := jh.journal.CreateEntry(r.Context(), req.Entry)
	if err != nil {
		jh.logger.Error("couldnt create entry", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save entry", jh.logger, op)
		return
	}

	writeJSON(w, http.StatusCreated, entry, jh.logger, op)
}

func (jh *JournalHandler) HandleGetEntries(w http.ResponseWriter, r *http.Request) {
	op := "handlers.JournalHandler.HandleGetEntries"

	entries, err := jh.journal.ListEntries(r.Context())
	if err != nil {
		jh.logger.Error("couldnt get entries", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load entries", jh.logger, op)
		return
	}

	writeJSON(w, http.StatusOK, entries, jh.logger, op)
}

// HandleRecommend: POST /recommend {mood, habits} -> {recommendations}
func (jh *JournalHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	op := "handlers.JournalHandler.HandleRecommend"

	req := decodeBody[recommendRequest](r, jh.logger, op)

	writeJSON(w, http.StatusOK, recommendResponse{
		Recommendations: jh.journal.Recommend(req.Mood, req.Habits),
	}, jh.logger, op)
}
