package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getMe returns the authenticated user's profile.
// GET /api/me.
func (h *Handler) getMe(c *gin.Context) {
	u, err := queryOne[user](h, c,
		"SELECT * FROM users WHERE id = @id",
		pgx.NamedArgs{"id": currentUserID(c)})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "user not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch user")
		}
		return
	}
	c.JSON(http.StatusOK, u)
}

// getUsers lists staff accounts for the user management page.
// GET /api/users (ADMIN only).
func (h *Handler) getUsers(c *gin.Context) {
	users, err := queryMany[user](h, c,
		"SELECT * FROM users ORDER BY created_at", nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	if users == nil {
		users = []user{}
	}
	c.JSON(http.StatusOK, users)
}

// getDashboard returns patient counts by gender and religion.
// GET /api/dashboard.
func (h *Handler) getDashboard(c *gin.Context) {
	patients, err := queryMany[patient](h, c, "SELECT * FROM patients", nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch patients")
		return
	}
	c.JSON(http.StatusOK, buildDashboardStats(patients))
}
