package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
)

// Server provides the local admin HTTP API used by operators and `kava mcp`
type Server struct {
	stateCache *usecase.StateCache
	queueRepo  repo.QueueRepo
	cycleUC    *usecase.CycleUsecase
	tracker    *usecase.DayTracker
	guildID    domain.Snowflake

	server *http.Server
	port   int
}

// StateView is the JSON form of the cached bot state
type StateView struct {
	Initialized bool        `json:"initialized"`
	Day         string      `json:"day"`
	LoadedAt    *time.Time  `json:"loaded_at,omitempty"`
	Groups      []GroupView `json:"groups"`
}

// GroupView is the JSON form of a reaction-role group
type GroupView struct {
	MessageID         domain.Snowflake      `json:"message_id"`
	MutuallyExclusive bool                  `json:"mutually_exclusive"`
	Roles             []domain.ReactionRole `json:"roles"`
}

// EnqueueRequest is the body of POST /api/queue
type EnqueueRequest struct {
	GuildID   domain.Snowflake `json:"guild_id"`
	ChannelID domain.Snowflake `json:"channel_id"`
	Msg       string           `json:"msg"`
	Reactions []string         `json:"reactions"`
}

// NewServer creates a new API server
func NewServer(
	stateCache *usecase.StateCache,
	queueRepo repo.QueueRepo,
	cycleUC *usecase.CycleUsecase,
	tracker *usecase.DayTracker,
	guildID domain.Snowflake,
	port int,
) *Server {
	return &Server{
		stateCache: stateCache,
		queueRepo:  queueRepo,
		cycleUC:    cycleUC,
		tracker:    tracker,
		guildID:    guildID,
		port:       port,
	}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/state/reset", s.handleStateReset)
	mux.HandleFunc("/api/cycle/daily", s.handleCycleDaily)
	mux.HandleFunc("/api/cycle/weekly", s.handleCycleWeekly)
	mux.HandleFunc("/api/queue", s.handleQueue)
	mux.HandleFunc("/api/queue/depth", s.handleQueueDepth)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Start starts the HTTP server on localhost
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler: s.Handler(),
	}

	fmt.Printf("[API] Starting HTTP server on port %d\n", s.port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, NewStateView(s.stateCache.Peek()))
}

func (s *Server) handleStateReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	state, err := s.stateCache.Reload(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, NewStateView(state))
}

func (s *Server) handleCycleDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	day := s.tracker.Today()
	if err := s.cycleUC.Daily(r.Context(), day); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"success": true, "day": day.String()})
}

func (s *Server) handleCycleWeekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.cycleUC.Weekly(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"success": true})
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ChannelID.IsZero() || req.Msg == "" {
		http.Error(w, "channel_id and msg are required", http.StatusBadRequest)
		return
	}
	if req.GuildID.IsZero() {
		req.GuildID = s.guildID
	}

	id, err := s.queueRepo.Enqueue(r.Context(), &domain.QueuedMessage{
		GuildID:   req.GuildID,
		ChannelID: req.ChannelID,
		Body:      req.Msg,
		Reactions: req.Reactions,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"success": true, "id": id})
}

func (s *Server) handleQueueDepth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	depth, err := s.queueRepo.Depth(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"depth": depth})
}

// ============ Helpers ============

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrInvalidConfig) {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// NewStateView converts a state snapshot; groups are ordered by message ID
func NewStateView(state *domain.BotState) StateView {
	view := StateView{Initialized: state.Initialized, Groups: []GroupView{}}
	if !state.Initialized {
		return view
	}
	view.Day = state.Day.String()
	loaded := state.LoadedAt
	view.LoadedAt = &loaded
	for _, g := range state.Config.Groups {
		view.Groups = append(view.Groups, GroupView{
			MessageID:         g.MessageID,
			MutuallyExclusive: g.MutuallyExclusive,
			Roles:             g.Roles,
		})
	}
	sort.Slice(view.Groups, func(i, j int) bool { return view.Groups[i].MessageID < view.Groups[j].MessageID })
	return view
}
