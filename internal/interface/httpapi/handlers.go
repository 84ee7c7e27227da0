package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jinford/integral-rag/internal/module/retrieval/application"
	"github.com/jinford/integral-rag/internal/module/retrieval/domain"
)

type queryRequest struct {
	Prompt    string          `json:"prompt"`
	NetworkID json.RawMessage `json:"networkId"`
}

type postView struct {
	ID        int64  `json:"id"`
	NetworkID int64  `json:"networkId"`
	Author    string `json:"author"`
	Content   string `json:"content"`
}

type profileView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type resultView struct {
	Type  domain.ResultKind `json:"type"`
	Item  any               `json:"item"`
	Score float64           `json:"score"`
}

type queryResponse struct {
	Success bool         `json:"success"`
	Network string       `json:"network,omitempty"`
	Prompt  string       `json:"prompt"`
	Results []resultView `json:"results"`
	Message string       `json:"message,omitempty"`
}

const noRelevantContentMessage = "No relevant content found"

type embedResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Stats   *application.IngestStats `json:"stats"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	s.log.InfoContext(r.Context(), "Starting data embedding process")

	stats, err := s.ingester.Ingest(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "Embed failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Failed to embed and store data",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, embedResponse{
		Success: true,
		Message: "Successfully embedded and stored all data",
		Stats:   stats,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON body", Error: err.Error()})
		return
	}

	networkID := parseNetworkID(req.NetworkID)
	result, err := s.querier.Query(r.Context(), req.Prompt, networkID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmptyPrompt):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Prompt is required"})
		return
	case errors.Is(err, domain.ErrInvalidNetworkID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Valid networkId is required"})
		return
	case errors.Is(err, domain.ErrNetworkNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: fmt.Sprintf("Network with ID %d not found", networkID)})
		return
	case errors.Is(err, domain.ErrDimensionMismatch):
		// 保存済みベクトルと次元数が食い違う場合は一致なしとして扱う
		s.log.WarnContext(r.Context(), "Embedding dimensions do not match stored vectors", "networkID", networkID, "error", err)
		writeJSON(w, http.StatusOK, queryResponse{
			Success: true,
			Prompt:  req.Prompt,
			Results: []resultView{},
			Message: noRelevantContentMessage,
		})
		return
	default:
		s.log.ErrorContext(r.Context(), "Error in query handler", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Failed to process query",
			Error:   err.Error(),
		})
		return
	}

	views := make([]resultView, 0, len(result.Results))
	for _, res := range result.Results {
		view, err := domain.MatchResult(res,
			func(p *domain.Post, score float64) resultView {
				return resultView{
					Type:  domain.ResultKindPost,
					Item:  postView{ID: p.ID, NetworkID: p.NetworkID, Author: p.Author, Content: p.Content},
					Score: score,
				}
			},
			func(p *domain.Profile, score float64) resultView {
				return resultView{
					Type:  domain.ResultKindProfile,
					Item:  profileView{ID: p.ID, Name: p.Name, Bio: p.Bio},
					Score: score,
				}
			},
		)
		if err != nil {
			s.log.ErrorContext(r.Context(), "Error in query handler", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Failed to process query", Error: err.Error()})
			return
		}
		views = append(views, view)
	}

	resp := queryResponse{
		Success: true,
		Network: result.Network.Name,
		Prompt:  result.Prompt,
		Results: views,
	}
	if len(views) == 0 {
		resp.Message = noRelevantContentMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseNetworkID は JSON の整数のみを受け付けます
// 文字列や小数、欠落は 0（不正なID）になります
func parseNetworkID(raw json.RawMessage) int64 {
	var id int64
	if len(raw) == 0 || json.Unmarshal(raw, &id) != nil {
		return 0
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
