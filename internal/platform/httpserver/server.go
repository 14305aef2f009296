package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	dropengine "dropspot/contexts/offers/drop-engine"
	dropenginerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	enginehttp "dropspot/contexts/offers/drop-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "dropspot/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	engine dropengine.Module
}

func New(engine dropengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		engine: engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the routing table for in-process tests.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /drops", s.handleListDrops)
	s.mux.HandleFunc("POST /drops", s.handleCreateDrop)
	s.mux.HandleFunc("GET /drops/nearby", s.handleNearbyDrops)
	s.mux.HandleFunc("GET /drops/{drop_id}", s.handleGetDrop)
	s.mux.HandleFunc("PATCH /drops/{drop_id}", s.handleUpdateDrop)
	s.mux.HandleFunc("DELETE /drops/{drop_id}", s.handleDeactivateDrop)
	s.mux.HandleFunc("GET /drops/{drop_id}/my-status", s.handleDropStatus)

	s.mux.HandleFunc("POST /drops/{drop_id}/waitlist", s.handleJoinWaitlist)
	s.mux.HandleFunc("DELETE /drops/{drop_id}/waitlist", s.handleLeaveWaitlist)
	s.mux.HandleFunc("GET /drops/{drop_id}/waitlist/position", s.handleWaitlistPosition)
	s.mux.HandleFunc("GET /drops/{drop_id}/waitlist/count", s.handleWaitlistCount)

	s.mux.HandleFunc("POST /drops/{drop_id}/claims", s.handleAttemptClaim)
	s.mux.HandleFunc("GET /claims/{claim_id}", s.handleGetClaim)

	s.mux.HandleFunc("GET /me/waitlist", s.handleMyWaitlist)
	s.mux.HandleFunc("GET /me/claims", s.handleMyClaims)

	s.mux.HandleFunc("GET /admin/claims", s.handleAdminListClaims)
	s.mux.HandleFunc("POST /admin/claims/{claim_id}/decision", s.handleDecideClaim)
	s.mux.HandleFunc("GET /admin/stats", s.handleStats)
}

func (s *Server) handleCreateDrop(w http.ResponseWriter, r *http.Request) {
	adminID, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	var req enginehttp.CreateDropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.CreateDropHandler(r.Context(), adminID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateDrop(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req enginehttp.UpdateDropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.UpdateDropHandler(r.Context(), r.PathValue("drop_id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeactivateDrop(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if err := s.engine.Handler.DeactivateDropHandler(r.Context(), r.PathValue("drop_id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDrops(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.ListDropsHandler(r.Context(), r.URL.Query().Get("phase"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNearbyDrops(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "lon must be a number")
		return
	}
	var radiusKm float64
	if raw := query.Get("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_radius", "radius_km must be a number")
			return
		}
	}

	resp, err := s.engine.Handler.NearbyDropsHandler(r.Context(), lat, lon, radiusKm)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDrop(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.GetDropHandler(r.Context(), r.PathValue("drop_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDropStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.DropStatusHandler(r.Context(), r.PathValue("drop_id"), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJoinWaitlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.JoinWaitlistHandler(r.Context(), r.PathValue("drop_id"), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLeaveWaitlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.LeaveWaitlistHandler(r.Context(), r.PathValue("drop_id"), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWaitlistPosition(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.WaitlistPositionHandler(r.Context(), r.PathValue("drop_id"), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWaitlistCount(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.WaitlistCountHandler(r.Context(), r.PathValue("drop_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyWaitlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.MyWaitlistHandler(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAttemptClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req enginehttp.AttemptClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.AttemptClaimHandler(r.Context(), r.PathValue("drop_id"), userID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleMyClaims(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.MyClaimsHandler(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.GetClaimHandler(r.Context(), r.PathValue("claim_id"), userID, isAdmin(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminListClaims(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	query := r.URL.Query()
	offset, err := parseOptionalInt(query.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
		return
	}
	limit, err := parseOptionalInt(query.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}

	resp, err := s.engine.Handler.ListClaimsHandler(r.Context(), query.Get("drop_id"), query.Get("status"), offset, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecideClaim(w http.ResponseWriter, r *http.Request) {
	adminID, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	var req enginehttp.DecideClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.DecideClaimHandler(r.Context(), r.PathValue("claim_id"), adminID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.engine.Handler.StatsHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return "", false
	}
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "forbidden", "admin role required")
		return "", false
	}
	return userID, true
}

// isAdmin trusts the gateway-injected role header; the engine does not
// own identity.
func isAdmin(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-User-Role")), "admin")
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dropenginerrors.ErrDropNotFound):
		writeError(w, http.StatusNotFound, "drop_not_found", err.Error())
	case errors.Is(err, dropenginerrors.ErrClaimNotFound):
		writeError(w, http.StatusNotFound, "claim_not_found", err.Error())
	case errors.Is(err, dropenginerrors.ErrNotClaimOwner):
		writeError(w, http.StatusForbidden, "not_claim_owner", err.Error())
	case errors.Is(err, dropenginerrors.ErrAlreadyJoined):
		writeError(w, http.StatusConflict, "already_joined", err.Error())
	case errors.Is(err, dropenginerrors.ErrNotInWaitlist):
		writeError(w, http.StatusConflict, "not_in_waitlist", err.Error())
	case errors.Is(err, dropenginerrors.ErrPendingClaimExists):
		writeError(w, http.StatusConflict, "pending_claim_exists", err.Error())
	case errors.Is(err, dropenginerrors.ErrDuplicateClaim):
		writeError(w, http.StatusConflict, "duplicate_claim", err.Error())
	case errors.Is(err, dropenginerrors.ErrClaimNotPending):
		writeError(w, http.StatusConflict, "claim_not_pending", err.Error())
	case errors.Is(err, dropenginerrors.ErrDropNotJoinable):
		writeError(w, http.StatusUnprocessableEntity, "drop_not_joinable", err.Error())
	case errors.Is(err, dropenginerrors.ErrDropNotActive):
		writeError(w, http.StatusUnprocessableEntity, "drop_not_active", err.Error())
	case errors.Is(err, dropenginerrors.ErrOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "out_of_range", err.Error())
	case errors.Is(err, dropenginerrors.ErrOutOfStock):
		writeError(w, http.StatusUnprocessableEntity, "out_of_stock", err.Error())
	case errors.Is(err, dropenginerrors.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, dropenginerrors.ErrInvalidDrop),
		errors.Is(err, dropenginerrors.ErrInvalidWaitlistEntry),
		errors.Is(err, dropenginerrors.ErrInvalidClaimRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, enginehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseOptionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
