package handlers

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/tiendita/storefront/app/models"
	"github.com/tiendita/storefront/app/services"
	"github.com/tiendita/storefront/app/utils/cartmirror"
	"github.com/tiendita/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CartHandler struct {
	cartSvc      *services.CartService
	sessionStore sessions.SessionStore
	render       *render.Render
	validate     *validator.Validate
}

func NewCartHandler(cartSvc *services.CartService, sessionStore sessions.SessionStore, render *render.Render, validate *validator.Validate) *CartHandler {
	return &CartHandler{
		cartSvc:      cartSvc,
		sessionStore: sessionStore,
		render:       render,
		validate:     validate,
	}
}

type addItemPayload struct {
	VariantID string `json:"variant_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type updateItemPayload struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type cartResponse struct {
	Cart   *models.Cart      `json:"cart"`
	Mirror cartmirror.Mirror `json:"mirror"`
}

// GetCart returns the session's authoritative cart (empty when none exists
// yet — reads never create a cart) and refreshes the session mirror from it.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
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

	mirror := h.reconcileMirror(w, r, cart)
	_ = h.render.JSON(w, http.StatusOK, cartResponse{Cart: cart, Mirror: mirror})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionStore.SessionID(w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	var payload addItemPayload
	if !decodePayload(h.render, h.validate, w, r, &payload) {
		return
	}

	item, err := h.cartSvc.AddItem(r.Context(), sessionID, payload.VariantID, payload.Quantity)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	h.refreshMirror(w, r, sessionID)
	_ = h.render.JSON(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionStore.SessionID(w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	var payload updateItemPayload
	if !decodePayload(h.render, h.validate, w, r, &payload) {
		return
	}

	itemID := mux.Vars(r)["id"]
	item, removed, err := h.cartSvc.UpdateItemQuantity(r.Context(), itemID, payload.Quantity)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	h.refreshMirror(w, r, sessionID)
	if removed {
		_ = h.render.JSON(w, http.StatusOK, map[string]bool{"removed": true})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionStore.SessionID(w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	if err := h.cartSvc.RemoveItem(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(h.render, w, err)
		return
	}

	h.refreshMirror(w, r, sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessionStore.SessionID(w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	if err := h.cartSvc.ClearCart(r.Context(), sessionID); err != nil {
		respondError(h.render, w, err)
		return
	}

	h.refreshMirror(w, r, sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// refreshMirror re-reads the canonical cart and rebuilds the session mirror
// from it, keeping the client cache advisory rather than authoritative.
func (h *CartHandler) refreshMirror(w http.ResponseWriter, r *http.Request, sessionID string) {
	cart, err := h.cartSvc.GetCart(r.Context(), sessionID)
	if err != nil {
		log.Printf("refreshMirror: failed to re-read cart for session %s: %v", sessionID, err)
		return
	}
	h.reconcileMirror(w, r, cart)
}

func (h *CartHandler) reconcileMirror(w http.ResponseWriter, r *http.Request, cart *models.Cart) cartmirror.Mirror {
	mirror := cartmirror.FromCart(cart)
	encoded, err := mirror.Encode()
	if err != nil {
		log.Printf("reconcileMirror: failed to encode mirror: %v", err)
		return mirror
	}
	if err := h.sessionStore.SaveMirror(w, r, encoded); err != nil {
		log.Printf("reconcileMirror: failed to save mirror to session: %v", err)
	}
	return mirror
}
