package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/learnlog/internal/auth"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/service"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/wire"
)

type Dependencies struct {
	Logger             zerolog.Logger
	Addr               string
	InteractionService *service.InteractionService
	Auth               *auth.JWT // nil disables authentication
}

type Server struct {
	httpServer   *http.Server
	logger       zerolog.Logger
	mux          *http.ServeMux
	interactions *service.InteractionService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:       d.Logger,
		mux:          mux,
		interactions: d.InteractionService,
	}

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /v1/interactions", requireToken(d.Auth, s.handleListInteractions))
	mux.HandleFunc("GET /v1/interactions/{id}", requireToken(d.Auth, s.handleGetInteraction))
	mux.HandleFunc("POST /v1/interactions", requireToken(d.Auth, s.handleRecordInteraction))

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start blocks serving HTTP. It returns nil after a graceful Shutdown.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseItemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be an integer")
		return
	}

	logs, err := s.interactions.List(r.Context(), itemID)
	if err != nil {
		s.logger.Error().Err(err).Msg("list interactions failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	if wantsProtobuf(r) {
		writeProto(w, http.StatusOK, wire.InteractionsToList(logs))
		return
	}
	if logs == nil {
		logs = []types.InteractionLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleGetInteraction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be an integer")
		return
	}

	l, err := s.interactions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInteractionNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("get interaction failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	s.writeInteraction(w, r, http.StatusOK, l)
}

func (s *Server) handleRecordInteraction(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRecordRequest(w, r)
	if !ok {
		return
	}

	l, err := s.interactions.Record(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLearnerID):
			writeError(w, http.StatusBadRequest, "invalid_learner_id", err.Error())
		case errors.Is(err, service.ErrInvalidItemID):
			writeError(w, http.StatusBadRequest, "invalid_item_id", err.Error())
		case errors.Is(err, service.ErrInvalidKind):
			writeError(w, http.StatusBadRequest, "invalid_kind", err.Error())
		default:
			s.logger.Error().Err(err).Msg("record interaction failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	s.logger.Debug().
		Int64("id", l.ID).
		Int64("learner_id", l.LearnerID).
		Int64("item_id", l.ItemID).
		Str("kind", l.Kind).
		Msg("interaction recorded")

	s.writeInteraction(w, r, http.StatusCreated, l)
}

func (s *Server) decodeRecordRequest(w http.ResponseWriter, r *http.Request) (types.RecordInteractionRequest, bool) {
	if isProtobuf(r) {
		var msg structpb.Struct
		if err := readProto(r, &msg); err != nil {
			writeError(w, http.StatusBadRequest, "bad_proto", "invalid protobuf body")
			return types.RecordInteractionRequest{}, false
		}
		req, err := wire.RecordRequestFromStruct(&msg)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_proto", err.Error())
			return types.RecordInteractionRequest{}, false
		}
		return req, true
	}

	var req types.RecordInteractionRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return types.RecordInteractionRequest{}, false
	}
	return req, true
}

func (s *Server) writeInteraction(w http.ResponseWriter, r *http.Request, status int, l types.InteractionLog) {
	if wantsProtobuf(r) {
		writeProto(w, status, wire.InteractionToStruct(l))
		return
	}
	writeJSON(w, status, l)
}

// parseItemID reads the optional item_id query parameter. Absent or empty
// means no filter.
func parseItemID(r *http.Request) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("item_id"))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
