package handlers

import (
	"log"
	"net/http"

	"github.com/attarhouse/storefront/app/helpers"
	"github.com/attarhouse/storefront/app/services"
	"github.com/attarhouse/storefront/app/utils/calc"
	"github.com/attarhouse/storefront/app/utils/format"
	"github.com/attarhouse/storefront/app/utils/sessions"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type PromoHandler struct {
	promoSvc *services.PromoService
	carts    *services.CartManager
	render   *render.Render
}

func NewPromoHandler(promoSvc *services.PromoService, carts *services.CartManager, render *render.Render) *PromoHandler {
	return &PromoHandler{
		promoSvc: promoSvc,
		carts:    carts,
		render:   render,
	}
}

// Validate checks the submitted code and applies it to the session. The edit
// is recorded before the lookup starts, so any discount applied to the prior
// text is cleared immediately and a result for stale input is discarded.
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, ok := helpers.CartIDFromContext(r)
	if !ok {
		var err error
		cartID, err = sessions.GetCartID(w, r)
		if err != nil {
			log.Printf("PromoHandler.Validate: failed to resolve cart session: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
				"status":  "error",
				"message": "Could not access your cart. Please try again.",
			})
			return
		}
	}
	sess := h.carts.Session(ctx, cartID)

	code := r.FormValue("code")
	gen := sess.Promo.Edit(code)

	result, err := h.promoSvc.Validate(ctx, code)
	message := ""
	if err != nil {
		message = "We could not verify that promo code right now. You can still place your order."
	} else if code != "" && !result.IsValid {
		message = "That promo code is not valid."
	}

	sess.Promo.Apply(gen, result)

	discountPercent := decimal.Zero
	if result.IsValid {
		discountPercent = result.DiscountPercent
	}
	subtotal := sess.Cart.TotalPrice()
	totals := calc.ComputeTotals(subtotal, discountPercent)

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":                  "ok",
		"isValid":                 result.IsValid,
		"discountPercent":         discountPercent,
		"discountAmount":          totals.DiscountAmount,
		"finalTotal":              totals.FinalTotal,
		"discountAmountFormatted": format.Taka(totals.DiscountAmount),
		"finalTotalFormatted":     format.Taka(totals.FinalTotal),
		"message":                 message,
	})
}
