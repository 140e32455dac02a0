package api

import (
	"database/sql"
	"net/http"

	"github.com/avillegas/inventario/internal/model"
	"github.com/avillegas/inventario/internal/store"
)

// UsersHandler handles delivery-recipient endpoints.
type UsersHandler struct {
	DB *sql.DB
}

type userRequest struct {
	EmployeeID int64  `json:"employee_id"`
	FullName   string `json:"full_name"`
	Active     *bool  `json:"active"`
}

// List handles GET /api/users. ?active=true restricts to active users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	users, err := store.ListUsers(r.Context(), h.DB, activeOnly)
	if err != nil {
		storeError(w, err, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID <= 0 || req.FullName == "" {
		jsonError(w, http.StatusBadRequest, "employee_id and full_name are required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user, err := store.CreateUser(r.Context(), h.DB, req.EmployeeID, req.FullName, active)
	if err != nil {
		storeError(w, err, "failed to create user")
		return
	}
	jsonResponse(w, http.StatusCreated, user)
}

// Get handles GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Update handles PUT /api/users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID <= 0 || req.FullName == "" {
		jsonError(w, http.StatusBadRequest, "employee_id and full_name are required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if err := store.UpdateUser(r.Context(), h.DB, id, req.EmployeeID, req.FullName, active); err != nil {
		storeError(w, err, "failed to update user")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user updated"})
}

// Delete handles DELETE /api/users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := store.DeleteUser(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete user")
		return
	}
	jsonResponse(w, http.StatusNoContent, nil)
}
