package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zoobzio/emote"
	"github.com/zoobzio/emote/internal/display"
	"github.com/zoobzio/emote/internal/state"
)

type Classifier interface {
	Analyze(ctx context.Context, text string) (emote.AnalysisResult, error)
}

type AnalyzeHandler struct {
	classifier Classifier
	state      *state.State
}

func NewAnalyzeHandler(classifier Classifier, st *state.State) *AnalyzeHandler {
	if st == nil {
		st = state.New()
	}
	return &AnalyzeHandler{classifier: classifier, state: st}
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type ResultResponse struct {
	Busy   bool          `json:"busy"`
	Result *display.Card `json:"result"`
	Error  string        `json:"error,omitempty"`
}

type EmotionResponse struct {
	Emotion emote.Emotion `json:"emotion"`
	Emoji   string        `json:"emoji"`
	Color   string        `json:"color"`
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": emote.MessageBlankInput})
		return
	}

	if !h.state.Begin() {
		c.JSON(http.StatusConflict, gin.H{"error": "An analysis is already running"})
		return
	}

	result, err := h.state.Run(func() (emote.AnalysisResult, error) {
		return h.classifier.Analyze(c.Request.Context(), req.Text)
	})

	if err != nil {
		slog.Error("error analyzing text", "error", err)
		c.JSON(statusFor(err), gin.H{"error": emote.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, display.NewCard(result))
}

func (h *AnalyzeHandler) GetResult(c *gin.Context) {
	snap := h.state.Snapshot()

	res := ResultResponse{Busy: snap.Busy, Error: snap.Error}
	if snap.Result != nil {
		card := display.NewCard(*snap.Result)
		res.Result = &card
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnalyzeHandler) GetEmotions(c *gin.Context) {
	emotions := emote.Emotions()
	res := make([]EmotionResponse, len(emotions))
	for i, e := range emotions {
		style := emote.StyleFor(e)
		res[i] = EmotionResponse{Emotion: e, Emoji: style.Emoji, Color: style.Color}
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnalyzeHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, emote.ErrBlankInput):
		return http.StatusBadRequest
	case emote.IsMalformed(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
