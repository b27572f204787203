package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mjiang93/user-service/internal/domain"
	"github.com/mjiang93/user-service/internal/service"
)

// UserHandler translates HTTP requests into UserService calls. It holds no
// business rules of its own.
type UserHandler struct {
	users    *service.UserService
	log      zerolog.Logger
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		log:      log,
		validate: validator.New(),
	}
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// HandleList responds with all users, newest first. An empty store yields
// an empty list, not an absent data field.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, toUserViews(users), "")
}

// HandleGet responds with a single user by id.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Int64("id", id).Msg("get user")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, toUserView(user), "")
}

// HandleCreate creates a user from a JSON body. The presence check here is
// purely syntactic; semantic validation lives in the service.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		h.log.Error().Err(err).Msg("create user")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeSuccess(w, http.StatusCreated, toUserView(user), "User created successfully")
}

// HandleUpdate applies a partial update; absent body fields are untouched.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	user, err := h.users.Update(r.Context(), id, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		h.log.Error().Err(err).Int64("id", id).Msg("update user")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, toUserView(user), "User updated successfully")
}

// HandleDelete removes a user by id.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.users.Delete(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("delete user")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeSuccess(w, http.StatusOK, nil, "User deleted successfully")
}

// pathID parses the {id} path value, answering 400 when it is not an
// integer.
func (h *UserHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return 0, false
	}
	return id, true
}
