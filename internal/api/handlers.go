package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/in-nis/academy-grid/internal/auth"
	"github.com/in-nis/academy-grid/internal/excel"
	"github.com/in-nis/academy-grid/internal/grid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GridHandler serves the grid operations of every table.
type GridHandler struct {
	Service *grid.Service
}

// ErrorResponse is returned by every failing grid request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// TimesResponse lists the rows of a grid in display order
type TimesResponse struct {
	Times []string `json:"times"`
}

// RegisterTimeRequest is the request body for adding a grid row
type RegisterTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// UpsertCellRequest is the request body for writing one cell
type UpsertCellRequest struct {
	Time     string `json:"time" binding:"required"`
	Day      *int   `json:"day" binding:"required"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// UpsertCellResponse reports what the write did
type UpsertCellResponse struct {
	Outcome grid.Outcome `json:"outcome"`
}

// ImportResponse reports how many rows and cells an import applied
type ImportResponse struct {
	Rows  int `json:"rows"`
	Cells int `json:"cells"`
}

// ListTimes godoc
// @Summary      List grid rows
// @Description  Returns the distinct time labels of a grid, ordered with early hours last
// @Tags         grid
// @Produce      json
// @Param        academy  path  string  true  "Academy ID"
// @Param        table    path  string  true  "Grid table"  Enums(schedule, temp-schedule, pickup)
// @Success      200  {object}  TimesResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /academies/{academy}/{table}/times [get]
func (h *GridHandler) ListTimes(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		return
	}
	times, err := h.Service.ListTimes(c.Request.Context(), scope)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, TimesResponse{Times: times})
}

// RegisterTime godoc
// @Summary      Add a grid row
// @Description  Registers a time label so the row shows up with empty cells
// @Tags         grid
// @Accept       json
// @Produce      json
// @Param        academy  path  string               true  "Academy ID"
// @Param        table    path  string               true  "Grid table"  Enums(schedule, temp-schedule, pickup)
// @Param        body     body  RegisterTimeRequest  true  "Time label"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /academies/{academy}/{table}/times [post]
func (h *GridHandler) RegisterTime(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		return
	}
	var req RegisterTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Code: "validation_failed"})
		return
	}
	if err := h.Service.RegisterTime(c.Request.Context(), scope, req.Time); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Time row registered"})
}

// RemoveTime godoc
// @Summary      Remove a grid row
// @Description  Removes a time label; cells at that label follow the configured removal policy
// @Tags         grid
// @Produce      json
// @Param        academy  path  string  true  "Academy ID"
// @Param        table    path  string  true  "Grid table"  Enums(schedule, temp-schedule, pickup)
// @Param        time     path  string  true  "Time label (HH:MM)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /academies/{academy}/{table}/times/{time} [delete]
func (h *GridHandler) RemoveTime(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		return
	}
	if err := h.Service.RemoveTime(c.Request.Context(), scope, c.Param("time")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time row removed"})
}

// ListCells godoc
// @Summary      List raw cells
// @Description  Returns every stored cell of a grid, duplicates included
// @Tags         grid
// @Produce      json
// @Param        academy  path  string  true  "Academy ID"
// @Param        table    path  string  true  "Grid table"  Enums(schedule, temp-schedule, pickup)
// @Success      200  {array}   models.Cell
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /academies/{academy}/{table}/cells [get]
func (h *GridHandler) ListCells(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		return
	}
	cells, err := h.Service.ListCells(c.Request.Context(), scope)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cells)
}

// UpsertCell godoc
// @Summary      Write a cell
// @Description  Inserts or updates the cell at time/day/category; empty content deletes it
// @Tags         grid
// @Accept       json
// @Produce      json
// @Param        academy  path  string             true  "Academy ID"
// @Param        table    path  string             true  "Grid table"  Enums(schedule, temp-schedule, pickup)
// @Param        body     body  UpsertCellRequest  true  "Cell"
// @Success      200  {object}  UpsertCellResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /academies/{academy}/{table}/cells [put]
func (h *GridHandler) UpsertCell(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		return
	}
	var req UpsertCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Code: "validation_failed"})
		return
	}

	key := grid.Key{Time: req.Time, Day: *req.Day, Category: req.Category}
	outcome, err := h.Service.Upsert(c.Request.Context(), scope, key, req.Content, c.GetString(auth.ActorKey))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, UpsertCellResponse{Outcome: outcome})
}

// GetGrid godoc
// @Summary      Get the materialized grid
// @Description  Joins the ordered rows against the stored cells; duplicate cells are merged
// @Tags         grid
// @Produce      json
// @Param        academy  path  string  true  "Academy ID"
// @Param        table    path  string  true  "Grid table"  Enums(schedule, temp-schedule, pickup)
// @Success      200  {object}  grid.Grid
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /academies/{academy}/{table}/grid [get]
func (h *GridHandler) GetGrid(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		return
	}
	g, err := h.Service.Grid(c.Request.Context(), scope)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// ExportGrid godoc
// @Summary      Export the grid as xlsx
// @Tags         grid
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        academy  path  string  true  "Academy ID"
// @Param        table    path  string  true  "Grid table"  Enums(schedule, temp-schedule, pickup)
// @Success      200  {file}    file
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /academies/{academy}/{table}/grid/export [get]
func (h *GridHandler) ExportGrid(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		return
	}
	g, err := h.Service.Grid(c.Request.Context(), scope)
	if err != nil {
		writeError(c, err)
		return
	}

	f, err := excel.WriteGrid(g)
	if err != nil {
		slog.Error("failed to render grid workbook", "scope", scope.String(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render grid"})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s-%s.xlsx", scope.AcademyID, scope.Shape.Name)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		slog.Error("failed to write grid workbook", "scope", scope.String(), "error", err)
	}
}

// ImportGrid godoc
// @Summary      Import a grid from xlsx
// @Description  Registers every row of the sheet and upserts every non-empty cell
// @Tags         grid
// @Accept       multipart/form-data
// @Produce      json
// @Param        academy  path      string  true  "Academy ID"
// @Param        table    path      string  true  "Grid table"  Enums(schedule, temp-schedule, pickup)
// @Param        file     formData  file    true  "Workbook"
// @Success      200  {object}  ImportResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /academies/{academy}/{table}/grid/import [post]
func (h *GridHandler) ImportGrid(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing file", Code: "validation_failed"})
		return
	}
	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable file", Code: "validation_failed"})
		return
	}
	defer file.Close()

	sheet, err := excel.ReadGrid(file, scope.Shape)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to parse workbook: " + err.Error(), Code: "validation_failed"})
		return
	}

	ctx := c.Request.Context()
	actor := c.GetString(auth.ActorKey)
	var resp ImportResponse
	for _, label := range sheet.Labels {
		if err := h.Service.RegisterTime(ctx, scope, label); err != nil {
			writeError(c, err)
			return
		}
		resp.Rows++
	}
	for _, e := range sheet.Entries {
		key := grid.Key{Time: e.Time, Day: e.Day, Category: e.Category}
		if _, err := h.Service.Upsert(ctx, scope, key, e.Content, actor); err != nil {
			writeError(c, err)
			return
		}
		resp.Cells++
	}

	slog.Info("grid imported", "scope", scope.String(), "rows", resp.Rows, "cells", resp.Cells, "actor", actor)
	c.JSON(http.StatusOK, resp)
}

func scopeFrom(c *gin.Context) (grid.Scope, bool) {
	shape, ok := grid.ShapeByName(c.Param("table"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown grid table", Code: "not_found"})
		return grid.Scope{}, false
	}
	return grid.NewScope(c.Param("academy"), shape), true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, grid.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "validation_failed"})
	case errors.Is(err, grid.ErrCheckFailed):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Could not check existing cell", Code: "check_failed"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Grid operation failed", Code: "operation_failed"})
	}
}
