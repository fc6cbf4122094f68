package handler

import (
	"net/http"

	"order-backoffice/internal/dto"
	"order-backoffice/internal/model"
	"order-backoffice/internal/service"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	crmService service.CRMService
}

func NewCustomerHandler(crmService service.CRMService) *CustomerHandler {
	return &CustomerHandler{
		crmService: crmService,
	}
}

func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	var stage *model.CustomerStage
	if s := c.QueryParam("stage"); s != "" {
		st := model.CustomerStage(s)
		stage = &st
	}

	customers, err := h.crmService.ListCustomers(ctx, stage)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing name")
	}

	customer, err := h.crmService.CreateCustomer(ctx, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) RecordFollowUp(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := c.Param("id")

	var req dto.FollowUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.crmService.RecordFollowUp(ctx, customerID, req.Note); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHandler) Broadcast(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing message")
	}

	recipients, err := h.crmService.Broadcast(ctx, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.BroadcastResponse{Recipients: recipients})
}
