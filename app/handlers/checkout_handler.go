package handlers

import (
	"log"
	"net/http"

	"github.com/tiendita/storefront/app/services"
	"github.com/tiendita/storefront/app/utils/cartmirror"
	"github.com/tiendita/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	checkoutSvc  *services.CheckoutService
	cartSvc      *services.CartService
	sessionStore sessions.SessionStore
	render       *render.Render
}

func NewCheckoutHandler(checkoutSvc *services.CheckoutService, cartSvc *services.CartService, sessionStore sessions.SessionStore, render *render.Render) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutSvc:  checkoutSvc,
		cartSvc:      cartSvc,
		sessionStore: sessionStore,
		render:       render,
	}
}

// Checkout places the order for the session's cart. The session mirror is
// reconciled against the server cart first and discarded afterwards; totals
// always come from the catalog, never from cached mirror prices.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionStore.SessionID(w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	cart, err := h.cartSvc.GetCart(r.Context(), sessionID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	if encoded, encErr := cartmirror.FromCart(cart).Encode(); encErr == nil {
		if saveErr := h.sessionStore.SaveMirror(w, r, encoded); saveErr != nil {
			log.Printf("Checkout: failed to reconcile mirror for session %s: %v", sessionID, saveErr)
		}
	}

	userID := h.sessionStore.GetUserID(r)

	order, err := h.checkoutSvc.PlaceOrder(r.Context(), sessionID, userID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	if encoded, encErr := (cartmirror.Mirror{}).Encode(); encErr == nil {
		if saveErr := h.sessionStore.SaveMirror(w, r, encoded); saveErr != nil {
			log.Printf("Checkout: failed to clear mirror for session %s: %v", sessionID, saveErr)
		}
	}

	_ = h.render.JSON(w, http.StatusCreated, order)
}
