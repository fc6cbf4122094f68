package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"order-backoffice/internal/cache"
	"order-backoffice/internal/dto"
	"order-backoffice/internal/payment"
	"order-backoffice/internal/repository"
	"order-backoffice/internal/service"
	"order-backoffice/internal/storage"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type PaymentHandler struct {
	confirmationService service.ConfirmationService
	redis               *redis.Client
}

func NewPaymentHandler(confirmationService service.ConfirmationService, rdb *redis.Client) *PaymentHandler {
	return &PaymentHandler{
		confirmationService: confirmationService,
		redis:               rdb,
	}
}

// httpError maps domain sentinels onto HTTP statuses; unknown errors bubble
// up to echo's recover/error middleware as 500s.
func httpError(err error) error {
	var exceeds *payment.ExceedsRemainingError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict), errors.Is(err, payment.ErrAlreadyPaid):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, payment.ErrInvalidAmount), errors.As(err, &exceeds):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, storage.ErrUploadFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return err
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.confirmationService.CreateOrder(ctx, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

// ConfirmPayment takes a multipart form: amount, method and the mandatory
// proof image.
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("id")

	amount, err := strconv.ParseInt(c.FormValue("amount"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	sub := dto.PaymentSubmission{
		Amount: amount,
		Method: c.FormValue("method"),
	}

	file, err := c.FormFile("proof")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing proof file")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable proof file")
	}
	defer src.Close()
	sub.Proof = src
	sub.ProofFilename = file.Filename

	order, err := h.confirmationService.ConfirmPayment(ctx, orderID, sub)
	if err != nil {
		return httpError(err)
	}

	h.dropCachedState(c, orderID)
	return c.JSON(http.StatusOK, order)
}

func (h *PaymentHandler) ReviewPayment(c echo.Context) error {
	ctx := c.Request().Context()
	recordID := c.Param("recordID")

	var req dto.ReviewPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.confirmationService.ReviewPayment(ctx, recordID, req.Approve)
	if err != nil {
		return httpError(err)
	}

	h.dropCachedState(c, order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *PaymentHandler) GetPaymentState(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("id")

	key := fmt.Sprintf(cache.KeyPaymentState, orderID)
	if s, err := h.redis.Get(ctx, key).Result(); err == nil && s != "" {
		return c.JSONBlob(http.StatusOK, []byte(s))
	}

	state, err := h.confirmationService.GetPaymentState(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	if b, err := json.Marshal(state); err == nil {
		_ = h.redis.Set(ctx, key, b, cache.TTLPaymentState).Err()
	}

	return c.JSON(http.StatusOK, state)
}

// Confirmations and reviews invalidate the cached snapshot; the next read
// repopulates from the DB.
func (h *PaymentHandler) dropCachedState(c echo.Context, orderID string) {
	key := fmt.Sprintf(cache.KeyPaymentState, orderID)
	_ = h.redis.Del(c.Request().Context(), key).Err()
}
