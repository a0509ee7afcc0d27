// Package api exposes the career engine over HTTP. It is a thin adapter:
// every route decodes a request, calls the engine service and encodes the
// result. Game rules live in the engine, never here.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"goalline/internal/config"
	"goalline/internal/engine"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg    config.APIConfig
	log    *slog.Logger
	engine *engine.Service
	mux    *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, svc *engine.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		log:    logger,
		engine: svc,
		mux:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/academies", s.handleAcademies)
		r.Post("/careers", s.handleCreateCareer)
		r.Get("/careers/{id}", s.handleCareerView)
		r.Delete("/careers/{id}", s.handleCloseCareer)
		r.Post("/careers/{id}/actions", s.handleAction)
		r.Post("/careers/{id}/advance", s.handleAdvance)
		r.Get("/careers/{id}/export", s.handleExport)
	})
}

func (s *Server) handleAcademies(w http.ResponseWriter, r *http.Request) {
	count := 4
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 8 {
			writeError(w, http.StatusBadRequest, "count must be 1..8")
			return
		}
		count = n
	}
	writeJSON(w, http.StatusOK, map[string]any{"academies": s.engine.Academies(count)})
}

func (s *Server) handleCreateCareer(w http.ResponseWriter, r *http.Request) {
	var in engine.StartCareerInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, view, err := s.engine.StartCareer(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleCareerView(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.View(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCloseCareer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.engine.View(id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.engine.CloseCareer(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// actionEnvelope is the wire form of a player action: a kind tag plus
// whichever fields that kind carries.
type actionEnvelope struct {
	Kind      string `json:"kind"`
	Key       string `json:"key,omitempty"`
	Club      string `json:"club,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Index     int    `json:"index,omitempty"`
	Direction string `json:"direction,omitempty"`
	Tier      string `json:"tier,omitempty"`
}

// decodeAction maps a wire kind to an engine action. Unknown kinds come
// back nil; the engine treats a nil action as a no-op, which keeps the
// save untouched when an old client sends something this build dropped.
func decodeAction(in actionEnvelope) engine.Action {
	switch in.Kind {
	case "acknowledge":
		return engine.Acknowledge{}
	case "choose":
		return engine.ChooseOption{Key: in.Key}
	case "apply":
		return engine.SendApplication{Club: in.Club, Mode: in.Mode}
	case "extend":
		return engine.ProposeExtension{Mode: in.Mode}
	case "request_loan":
		return engine.RequestLoan{}
	case "accept_offer":
		return engine.AcceptOffer{Index: in.Index}
	case "decline_offers":
		return engine.DeclineOffers{}
	case "accept_renewal":
		return engine.AcceptRenewal{}
	case "decline_renewal":
		return engine.DeclineRenewal{}
	case "accept_release_clause":
		return engine.AcceptReleaseClause{}
	case "decline_release_clause":
		return engine.DeclineReleaseClause{}
	case "accept_feedback":
		return engine.AcceptFeedback{}
	case "dismiss_feedback":
		return engine.DismissFeedback{}
	case "accept_loan_sign":
		return engine.AcceptLoanSign{}
	case "decline_loan_sign":
		return engine.DeclineLoanSign{}
	case "accept_cup":
		return engine.AcceptCup{}
	case "decline_cup":
		return engine.DeclineCup{}
	case "fake_sick":
		return engine.FakeSick{}
	case "pick_penalty":
		return engine.PickPenalty{Direction: in.Direction}
	case "take_booster":
		return engine.TakeBooster{Tier: in.Tier}
	case "refuse_booster":
		return engine.RefuseBooster{}
	case "rush_back":
		return engine.RushBack{}
	case "sit_out":
		return engine.SitOut{}
	case "retire":
		return engine.Retire{}
	}
	return nil
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var in actionEnvelope
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	eff, err := s.engine.Dispatch(chi.URLParam(r, "id"), decodeAction(in))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eff)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	eff, err := s.engine.AdvanceSeason(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eff)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	payload, err := s.engine.Export(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrUnknownCareer):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
