package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campus-rooms/booking-service/internal/dto"
	"github.com/campus-rooms/booking-service/internal/middleware"
	"github.com/campus-rooms/booking-service/internal/models"
	"github.com/campus-rooms/booking-service/internal/repository"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type RuleHandler struct {
	ruleRepo repository.RuleRepository
}

func NewRuleHandler(ruleRepo repository.RuleRepository) *RuleHandler {
	return &RuleHandler{ruleRepo: ruleRepo}
}

func (h *RuleHandler) RegisterRoutes(g *echo.Group) {
	rules := g.Group("/rules", middleware.RequireAdmin)
	rules.GET("", h.ListRules)
	rules.POST("", h.CreateRule)
	rules.PATCH("/:id", h.UpdateRule)
}

func (h *RuleHandler) ListRules(c echo.Context) error {
	rules, err := h.ruleRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.RuleResponse, len(rules))
	for i := range rules {
		resp[i] = dto.ToRuleResponse(&rules[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RuleHandler) CreateRule(c echo.Context) error {
	var req dto.CreateRuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "rule name is required")
	}

	action := req.Action
	if action == "" {
		action = models.ActionApprove
	}
	if !action.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule action")
	}

	rule := &models.AutoApprovalRule{
		Name:           req.Name,
		OrganizationID: req.OrganizationID,
		RoomID:         req.RoomID,
		UserID:         req.UserID,
		MaxDuration:    req.MaxDuration,
		StartHour:      req.StartHour,
		EndHour:        req.EndHour,
		Action:         action,
		Active:         true,
	}
	if err := h.ruleRepo.Create(c.Request().Context(), rule); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToRuleResponse(rule))
}

func (h *RuleHandler) UpdateRule(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule id")
	}

	var req dto.UpdateRuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "rule name is required")
		}
		updates["name"] = *req.Name
	}
	if req.OrganizationID != nil {
		updates["organization_id"] = nullableID(*req.OrganizationID)
	}
	if req.RoomID != nil {
		updates["room_id"] = nullableID(*req.RoomID)
	}
	if req.UserID != nil {
		updates["user_id"] = nullableID(*req.UserID)
	}
	if req.MaxDuration != nil {
		if *req.MaxDuration <= 0 {
			updates["max_duration"] = nil
		} else {
			updates["max_duration"] = *req.MaxDuration
		}
	}
	if req.StartHour != nil {
		updates["start_hour"] = nullableClock(*req.StartHour)
	}
	if req.EndHour != nil {
		updates["end_hour"] = nullableClock(*req.EndHour)
	}
	if req.Action != nil {
		if !req.Action.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid rule action")
		}
		updates["action"] = *req.Action
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no fields to update")
	}

	if _, err := h.ruleRepo.FindByID(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "rule not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rule, err := h.ruleRepo.Update(c.Request().Context(), uint(id), updates)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToRuleResponse(rule))
}

// nullableID maps a zero id to NULL, clearing the scope.
func nullableID(id uint) any {
	if id == 0 {
		return nil
	}
	return id
}

// nullableClock maps an empty clock string to NULL, clearing the bound.
func nullableClock(clock string) any {
	if clock == "" {
		return nil
	}
	return clock
}
