// Package http exposes the clickwork services over a JSON HTTP API.
// It authenticates the worker, decodes requests, calls the services and maps
// their errors to status codes.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	contract "github.com/clickwork/clickwork/api"
	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/clickwork/clickwork/internal/config"
	"github.com/clickwork/clickwork/internal/domain"
	"github.com/clickwork/clickwork/internal/service"
	"github.com/clickwork/clickwork/internal/validation"
	"github.com/clickwork/clickwork/pkg/api"
	"github.com/clickwork/clickwork/pkg/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	log        *slog.Logger
	auth       config.Auth
	assignment service.AssignmentService
	submission service.SubmissionService
	review     service.ReviewService
	admin      service.AdminService
}

func NewServer(
	log *slog.Logger,
	auth config.Auth,
	as service.AssignmentService,
	ss service.SubmissionService,
	rs service.ReviewService,
	ads service.AdminService,
) *Server {
	return &Server{
		log:        log,
		auth:       auth,
		assignment: as,
		submission: ss,
		review:     rs,
		admin:      ads,
	}
}

var _ api.ServerInterface = (*Server)(nil)

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/openapi.yaml", contract.DocumentHandler())

	mux.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Mount("/", api.HandlerWithOptions(s, api.ChiServerOptions{
			ErrorHandlerFunc: s.handleParamError,
		}))
	})

	return mux
}

func (s *Server) GetHome(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetHome"

	summary, err := s.assignment.Home(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, summary)
}

func (s *Server) GetNextTask(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetNextTask"

	route, err := s.assignment.NextTask(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, route)
}

func (s *Server) GetTask(w http.ResponseWriter, r *http.Request, taskID int64) {
	const op = "internal.transport.http.GetTask"

	view, err := s.review.ViewTask(r.Context(), userIDFromContext(r.Context()), taskID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, view)
}

func (s *Server) PostSubmitTask(w http.ResponseWriter, r *http.Request, taskID int64) {
	const op = "internal.transport.http.PostSubmitTask"

	var req submitRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	sub := domain.Submission{
		Answer:      req.Answer,
		Reviews:     make([]domain.ReviewFlag, len(req.Reviews)),
		StopWorking: req.StopWorking,
	}
	for i, f := range req.Reviews {
		sub.Reviews[i] = domain.ReviewFlag{UserID: f.UserID, Comment: f.Comment}
	}

	route, err := s.submission.Submit(r.Context(), userIDFromContext(r.Context()), taskID, sub)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, route)
}

func (s *Server) PostUnmergeTask(w http.ResponseWriter, r *http.Request, taskID int64) {
	const op = "internal.transport.http.PostUnmergeTask"

	route, err := s.submission.Unmerge(r.Context(), userIDFromContext(r.Context()), taskID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, route)
}

func (s *Server) PostAbandon(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostAbandon"

	abandoned, err := s.assignment.Abandon(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, api.AbandonResponse{Abandoned: abandoned})
}

func (s *Server) GetClaims(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetClaims"

	claims, err := s.admin.ListClaims(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, api.ClaimList{Claims: claims})
}

func (s *Server) PostDeleteClaims(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostDeleteClaims"

	var req deleteClaimsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	deleted, err := s.admin.DeleteClaims(r.Context(), userIDFromContext(r.Context()), req.IDs)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, api.DeleteClaimsResponse{Deleted: deleted})
}

func (s *Server) GetNextReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetNextReview"

	route, err := s.review.NextReview(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, route)
}

func (s *Server) GetReview(w http.ResponseWriter, r *http.Request, reviewID int64) {
	const op = "internal.transport.http.GetReview"

	view, err := s.review.ViewReview(r.Context(), userIDFromContext(r.Context()), reviewID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, view)
}

func (s *Server) PostAcknowledgeReview(w http.ResponseWriter, r *http.Request, reviewID int64) {
	const op = "internal.transport.http.PostAcknowledgeReview"

	route, err := s.review.AcknowledgeReview(r.Context(), userIDFromContext(r.Context()), reviewID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, route)
}

func (s *Server) GetProjectOverview(w http.ResponseWriter, r *http.Request, projectID int64) {
	const op = "internal.transport.http.GetProjectOverview"

	overview, err := s.admin.ProjectOverview(r.Context(), userIDFromContext(r.Context()), projectID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, overview)
}

// respond encodes data as JSON with the given status code.
func (s *Server) respond(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

func (s *Server) respondAPIError(w http.ResponseWriter, code int, apiCode api.ErrorResponseErrorCode, message string, fields map[string]string) {
	var errResp api.ErrorResponse

	errResp.Error.Code = apiCode
	errResp.Error.Message = message
	errResp.Error.Fields = fields

	s.respond(w, code, errResp)
}

// decodeAndValidate deserializes a JSON request body into v and runs its
// validation tags.
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	return validation.ValidateStruct(v)
}

func (s *Server) decode(body io.ReadCloser, v any) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleParamError answers requests whose path parameters do not bind.
func (s *Server) handleParamError(w http.ResponseWriter, r *http.Request, err error) {
	s.handleServiceError(w, r, "internal.transport.http.handleParamError", fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a client-facing response.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
		slog.String("user_id", userIDFromContext(r.Context())),
	)

	var (
		validationErr *apperrors.ValidationError
		forbiddenErr  *apperrors.ForbiddenError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Info("rejected submission", sl.Err(err))
		s.respondAPIError(w, http.StatusUnprocessableEntity, api.VALIDATION, validationErr.Message, validationErr.Fields)
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Info("bad request", sl.Err(err))
		s.respondAPIError(w, http.StatusBadRequest, api.BADREQUEST, "invalid request", nil)
	case errors.Is(err, apperrors.ErrUnauthorized):
		log.Warn("unknown worker", sl.Err(err))
		s.respondAPIError(w, http.StatusUnauthorized, api.UNAUTHORIZED, "authentication required", nil)
	case errors.As(err, &forbiddenErr):
		log.Warn("forbidden", sl.Err(err))
		s.respondAPIError(w, http.StatusForbidden, api.FORBIDDEN, forbiddenErr.Reason, nil)
	case errors.Is(err, apperrors.ErrNotClaimed):
		log.Info("task not claimed", sl.Err(err))
		s.respondAPIError(w, http.StatusConflict, api.NOTCLAIMED, apperrors.ErrNotClaimed.Error(), nil)
	case errors.Is(err, apperrors.ErrClaimHeld):
		log.Info("claim held elsewhere", sl.Err(err))
		s.respondAPIError(w, http.StatusConflict, api.CLAIMHELD, apperrors.ErrClaimHeld.Error(), nil)
	case errors.Is(err, apperrors.ErrNotFound):
		log.Info("not found", sl.Err(err))
		s.respondAPIError(w, http.StatusNotFound, api.NOTFOUND, "resource not found", nil)
	default:
		log.Error("service error occurred", sl.Err(err))
		s.respondAPIError(w, http.StatusInternalServerError, api.INTERNAL, "internal server error", nil)
	}
}
