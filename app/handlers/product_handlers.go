package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/tiendita/storefront/app/models"
	"github.com/tiendita/storefront/app/repositories"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

const defaultPageSize = 20

type ProductHandler struct {
	catalogRepo repositories.CatalogRepositoryImpl
	render      *render.Render
}

func NewProductHandler(catalogRepo repositories.CatalogRepositoryImpl, render *render.Render) *ProductHandler {
	return &ProductHandler{
		catalogRepo: catalogRepo,
		render:      render,
	}
}

type productListResponse struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPageSize
	}
	offset := (page - 1) * perPage

	var (
		products []models.Product
		total    int64
		err      error
	)

	if categorySlug := r.URL.Query().Get("category"); categorySlug != "" {
		products, total, err = h.catalogRepo.GetByCategorySlugPaginated(ctx, categorySlug, perPage, offset)
	} else {
		products, total, err = h.catalogRepo.GetPaginated(ctx, perPage, offset)
	}
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, productListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	})
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.catalogRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, errorResponse{Error: "product not found"})
			return
		}
		respondError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, product)
}
