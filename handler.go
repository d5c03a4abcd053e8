package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Handler holds shared dependencies (db pool, logger) for all route handlers.
type Handler struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
// pgx.ErrNoRows is returned unlogged so callers can map it to 404.
func queryOne[T any](h *Handler, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := h.db.Query(c, sql, args)
	if err != nil {
		h.log.Error("query failed", zap.String("op", "queryOne"), zap.Error(err))
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		h.log.Error("scan failed", zap.String("op", "queryOne"), zap.Error(err))
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](h *Handler, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := h.db.Query(c, sql, args)
	if err != nil {
		h.log.Error("query failed", zap.String("op", "queryMany"), zap.Error(err))
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		h.log.Error("scan failed", zap.String("op", "queryMany"), zap.Error(err))
	}
	return results, err
}

// jsonbArg marshals v for a @param::jsonb placeholder. The pool runs in simple
// protocol mode, so composite values are sent as JSON text.
func jsonbArg(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal jsonb: %w", err)
	}
	return string(b), nil
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newDBPool creates a connection pool for the given datastore URL.
func newDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Simple query protocol avoids "cached plan must not change result type"
	// errors from poolers that share prepared statements across clients.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return pool, nil
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/me", h.getMe)
	api.GET("/users", requireRole(roleAdmin), h.getUsers)
	api.GET("/dashboard", h.getDashboard)

	api.POST("/metrics/anthropometrics", h.postAnthropometrics)

	api.GET("/patients", h.getPatients)
	api.GET("/patients/search", h.searchPatients)
	api.GET("/patients/:hn", h.getPatient)
	api.PUT("/patients", h.upsertPatient)
	api.PATCH("/patients/:hn", h.patchPatient)

	api.POST("/nutrition-assessments", h.createNutritionAssessment)
	api.GET("/nutrition-assessments", h.getNutritionAssessments)

	api.POST("/nutrition-logs/preview", h.previewNutritionLog)
	api.POST("/nutrition-logs", h.createNutritionLog)
	api.GET("/nutrition-logs", h.getNutritionLogs)
	api.DELETE("/nutrition-logs/:id", h.deleteNutritionLog)

	api.GET("/understanding/diseases", h.getDiseaseCatalog)
	api.POST("/understanding/score", h.scoreUnderstanding)
	api.POST("/understanding", h.createUnderstanding)
	api.GET("/understanding", h.getUnderstanding)

	api.GET("/reports/understanding", h.getUnderstandingReport)
	api.GET("/reports/understanding/export", h.exportUnderstandingReport)
	api.GET("/reports/nutrition", h.getNutritionReport)
	api.GET("/reports/nutrition/export", h.exportNutritionReport)
}
