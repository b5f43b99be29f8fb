package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/attarhouse/storefront/app/helpers"
	"github.com/attarhouse/storefront/app/models"
	"github.com/attarhouse/storefront/app/repositories"
	"github.com/attarhouse/storefront/app/services"
	"github.com/attarhouse/storefront/app/utils/format"
	"github.com/attarhouse/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CartHandler struct {
	productRepo repositories.ProductRepositoryImpl
	carts       *services.CartManager
	render      *render.Render
}

func NewCartHandler(productRepo repositories.ProductRepositoryImpl, carts *services.CartManager, render *render.Render) *CartHandler {
	return &CartHandler{
		productRepo: productRepo,
		carts:       carts,
		render:      render,
	}
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (string, *services.CartSession, bool) {
	cartID, ok := helpers.CartIDFromContext(r)
	if !ok {
		var err error
		cartID, err = sessions.GetCartID(w, r)
		if err != nil {
			log.Printf("CartHandler: failed to resolve cart session: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
				"status":  "error",
				"message": "Could not access your cart. Please try again.",
			})
			return "", nil, false
		}
	}
	return cartID, h.carts.Session(r.Context(), cartID), true
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := h.session(w, r)
	if !ok {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cartPayload(sess))
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	productID := r.FormValue("product_id")
	if productID == "" {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": "product_id is required.",
		})
		return
	}

	qty := 1
	if rawQty := r.FormValue("qty"); rawQty != "" {
		parsed, err := strconv.Atoi(rawQty)
		if err != nil || parsed < 1 {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"status":  "error",
				"message": "qty must be a positive integer.",
			})
			return
		}
		qty = parsed
	}

	product := h.lookupProduct(ctx, productID)
	if product == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]interface{}{
			"status":  "error",
			"message": "Product not found.",
		})
		return
	}

	sess.Cart.AddItem(models.CartProduct{
		ID:    product.ID,
		Name:  product.Name,
		Image: product.ImageURL,
		Price: product.Price,
	}, qty)
	h.carts.SaveSnapshot(ctx, cartID)

	_ = h.render.JSON(w, http.StatusOK, cartPayload(sess))
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	cartID, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	productID := r.FormValue("product_id")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if productID == "" || err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": "product_id and an integer qty are required.",
		})
		return
	}

	sess.Cart.UpdateQuantity(productID, qty)
	h.carts.SaveSnapshot(r.Context(), cartID)

	_ = h.render.JSON(w, http.StatusOK, cartPayload(sess))
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	cartID, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.Cart.RemoveItem(r.FormValue("product_id"))
	h.carts.SaveSnapshot(r.Context(), cartID)

	_ = h.render.JSON(w, http.StatusOK, cartPayload(sess))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.Cart.Clear()
	h.carts.SaveSnapshot(r.Context(), cartID)

	_ = h.render.JSON(w, http.StatusOK, cartPayload(sess))
}

// lookupProduct consults the catalog, falling back to the static default
// products when the backend is unreachable.
func (h *CartHandler) lookupProduct(ctx context.Context, productID string) *models.Product {
	product, err := h.productRepo.GetByID(ctx, productID)
	if err != nil {
		log.Printf("CartHandler.lookupProduct: catalog lookup failed for %s, checking defaults: %v", productID, err)
		for _, fallback := range models.DefaultProducts() {
			if fallback.ID == productID {
				return &fallback
			}
		}
		return nil
	}
	return product
}

func cartPayload(sess *services.CartSession) map[string]interface{} {
	subtotal := sess.Cart.TotalPrice()
	return map[string]interface{}{
		"status":            "ok",
		"items":             sess.Cart.Items(),
		"totalItems":        sess.Cart.TotalItems(),
		"subtotal":          subtotal,
		"subtotalFormatted": format.Taka(subtotal),
	}
}
