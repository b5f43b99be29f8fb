package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/attarhouse/storefront/app/helpers"
	"github.com/attarhouse/storefront/app/repositories"
	"github.com/attarhouse/storefront/app/services"
	"github.com/attarhouse/storefront/app/utils/format"
	"github.com/attarhouse/storefront/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	checkoutSvc *services.CheckoutService
	orderRepo   repositories.OrderRepository
	carts       *services.CartManager
	render      *render.Render
}

func NewCheckoutHandler(checkoutSvc *services.CheckoutService, orderRepo repositories.OrderRepository, carts *services.CartManager, render *render.Render) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutSvc: checkoutSvc,
		orderRepo:   orderRepo,
		carts:       carts,
		render:      render,
	}
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, ok := helpers.CartIDFromContext(r)
	if !ok {
		var err error
		cartID, err = sessions.GetCartID(w, r)
		if err != nil {
			log.Printf("CheckoutHandler.Submit: failed to resolve cart session: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
				"status":  "error",
				"message": "Could not access your cart. Please try again.",
			})
			return
		}
	}
	sess := h.carts.Session(ctx, cartID)

	form := services.CheckoutForm{
		Name:      r.FormValue("name"),
		Phone:     r.FormValue("phone"),
		Address:   r.FormValue("address"),
		Notes:     r.FormValue("notes"),
		PromoCode: r.FormValue("promo_code"),
	}

	order, err := h.checkoutSvc.Submit(ctx, sess, form)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"status":  "error",
				"message": "Please fill in all required fields.",
				"errors":  helpers.FormatValidationErrors(verr.Errs),
			})
		case errors.Is(err, services.ErrEmptyCart):
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"status":  "error",
				"message": "Your cart is empty.",
			})
		default:
			log.Printf("CheckoutHandler.Submit: order submission failed: %v", err)
			_ = h.render.JSON(w, http.StatusBadGateway, map[string]interface{}{
				"status":  "error",
				"message": "Your order could not be placed. Please try again.",
			})
		}
		return
	}

	// Cart was cleared by the service; drop the stale snapshot too.
	h.carts.SaveSnapshot(ctx, cartID)

	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"status":              "success",
		"orderCode":           order.OrderCode,
		"grandTotal":          order.GrandTotal,
		"grandTotalFormatted": format.Taka(order.GrandTotal),
		"message":             "Order Received! We'll contact you shortly to confirm delivery details.",
	})
}

func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	orderCode := mux.Vars(r)["code"]

	order, err := h.orderRepo.FindByCode(r.Context(), orderCode)
	if err != nil {
		log.Printf("CheckoutHandler.Show: failed to load order %s: %v", orderCode, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":  "error",
			"message": "Could not load the order. Please try again.",
		})
		return
	}
	if order == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]interface{}{
			"status":  "error",
			"message": "Order not found.",
		})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"order":  order,
	})
}
