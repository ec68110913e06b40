package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/tiendita/storefront/app/models"
	"github.com/tiendita/storefront/app/repositories"
	"github.com/tiendita/storefront/app/services"
	"github.com/tiendita/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	orderRepo    repositories.OrderRepository
	checkoutSvc  *services.CheckoutService
	sessionStore sessions.SessionStore
	render       *render.Render
	validate     *validator.Validate
}

func NewOrderHandler(orderRepo repositories.OrderRepository, checkoutSvc *services.CheckoutService, sessionStore sessions.SessionStore, render *render.Render, validate *validator.Validate) *OrderHandler {
	return &OrderHandler{
		orderRepo:    orderRepo,
		checkoutSvc:  checkoutSvc,
		sessionStore: sessionStore,
		render:       render,
		validate:     validate,
	}
}

// List returns the logged-in shopper's own orders; without a user in the
// session it falls back to the full listing.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		orders []models.Order
		err    error
	)

	if userID := h.sessionStore.GetUserID(r); userID != "" {
		orders, err = h.orderRepo.FindByUserID(r.Context(), userID)
	} else {
		orders, err = h.orderRepo.GetAllOrders(r.Context())
	}
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) DetailByCode(w http.ResponseWriter, r *http.Request) {
	orderCode := mux.Vars(r)["code"]

	order, err := h.orderRepo.FindByCode(r.Context(), orderCode)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	if order == nil {
		_ = h.render.JSON(w, http.StatusNotFound, errorResponse{Error: "order not found"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

type updateStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload updateStatusPayload
	if !decodePayload(h.render, h.validate, w, r, &payload) {
		return
	}

	status, ok := models.ParseOrderStatus(payload.Status)
	if !ok {
		_ = h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "unknown order status"})
		return
	}

	order, err := h.checkoutSvc.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}
