package handlers

import (
	"log"
	"net/http"

	"github.com/attarhouse/storefront/app/helpers"
	"github.com/attarhouse/storefront/app/models"
	"github.com/attarhouse/storefront/app/repositories"
	"github.com/gorilla/csrf"
	"github.com/unrolled/render"
)

type HomeHandler struct {
	productRepo repositories.ProductRepositoryImpl
	render      *render.Render
}

func NewHomeHandler(productRepo repositories.ProductRepositoryImpl, render *render.Render) *HomeHandler {
	return &HomeHandler{
		productRepo: productRepo,
		render:      render,
	}
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.productRepo.GetProducts(ctx)
	if err != nil {
		// Catalog fetch failure falls back to the static catalog so the
		// storefront stays usable.
		log.Printf("HomeHandler.Home: failed to load catalog, serving defaults: %v", err)
		products = models.DefaultProducts()
	}

	pageSpecificData := map[string]interface{}{
		"Title":     "Attar House | Premium Attar Collection",
		"Products":  products,
		"CSRFToken": csrf.Token(r),
	}

	datas := helpers.GetBaseData(r, pageSpecificData)
	_ = h.render.HTML(w, http.StatusOK, "home", datas)
}
