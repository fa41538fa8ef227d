package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/linkhub/internal/common"
	"github.com/dmitrijs2005/linkhub/internal/netx"
	"github.com/dmitrijs2005/linkhub/internal/server/repositories/links"
	"github.com/dmitrijs2005/linkhub/internal/server/services"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handlePublicProfile is the read-and-account operation: resolve the
// username (404 terminal on unknown), attribute the view as a side channel,
// and respond with the composed page. A ledger failure is logged and
// swallowed; the response never depends on its outcome.
func (s *Server) handlePublicProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	page, err := s.svc.Profiles.Resolve(ctx, username)
	if err != nil {
		s.writeError(ctx, w, err, "username", username)
		return
	}

	visitor := netx.VisitorAddr(r)
	if _, err := s.svc.Views.RecordView(ctx, page.User.ID, visitor); err != nil {
		s.logger.Error(ctx, "view attribution failed", "error", err.Error(), "subject", page.User.ID)
	}

	writeJSON(w, http.StatusOK, page)
}

type uploadRequest struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func (s *Server) handleRequestUploadURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}

	grant, err := s.svc.Objects.IssueUploadGrant(ctx, req.Name, req.Size, req.ContentType)
	if err != nil {
		s.writeError(ctx, w, err, "upload", req.Name)
		return
	}

	writeJSON(w, http.StatusOK, grant)
}

func (s *Server) handleServeObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	objectPath := chi.URLParam(r, "*")

	obj, err := s.svc.Objects.ReadObject(ctx, objectPath)
	if err != nil {
		s.writeError(ctx, w, err, "object_path", objectPath)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	_, _ = io.Copy(w, obj.Body)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}

	user, err := s.svc.Users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(ctx, w, err, "username", req.Username)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}

	token, user, err := s.svc.Users.Login(ctx, req.Username, req.Password)
	if err != nil {
		s.writeError(ctx, w, err, "username", req.Username)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := identityFromContext(ctx)

	user, err := s.svc.Users.GetByID(ctx, userID)
	if err != nil {
		s.writeError(ctx, w, err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := identityFromContext(ctx)

	page, err := s.svc.Profiles.ResolveOwner(ctx, userID)
	if err != nil {
		s.writeError(ctx, w, err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := identityFromContext(ctx)

	// unrecognized styling keys are rejected, not silently persisted
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var patch services.ProfilePatch
	if err := dec.Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}

	profile, err := s.svc.Profiles.UpdateProfile(ctx, userID, &patch)
	if err != nil {
		s.writeError(ctx, w, err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := identityFromContext(ctx)

	result, err := s.svc.Links.List(ctx, userID)
	if err != nil {
		s.writeError(ctx, w, err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type createLinkRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := identityFromContext(ctx)

	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}

	link, err := s.svc.Links.Create(ctx, userID, req.Title, req.URL, req.Position)
	if err != nil {
		s.writeError(ctx, w, err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := identityFromContext(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid link id"})
		return
	}

	if err := s.svc.Links.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody{Message: "not found"})
			return
		}
		s.writeError(ctx, w, err, "user_id", userID, "link_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReorderLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := identityFromContext(ctx)

	var positions []links.Position
	if err := json.NewDecoder(r.Body).Decode(&positions); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}

	if err := s.svc.Links.Reorder(ctx, userID, positions); err != nil {
		s.writeError(ctx, w, err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.svc.Users.ListAll(ctx)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePatchUserAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid user id"})
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var patch services.AccessPatch
	if err := dec.Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}

	user, err := s.svc.Users.UpdateAccess(ctx, id, &patch)
	if err != nil {
		s.writeError(ctx, w, err, "user_id", id)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListBadges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.svc.Badges.List(ctx)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
