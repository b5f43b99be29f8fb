package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/attarhouse/storefront/app/helpers"
	"github.com/attarhouse/storefront/app/services"
	"github.com/attarhouse/storefront/app/utils/sessions"
	"github.com/gorilla/mux"
)

// CartSession resolves the cart session cookie once per request, stashing the
// cart id and the item count in the request context for handlers and views.
func CartSession(carts *services.CartManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID, err := sessions.GetCartID(w, r)
			if err != nil {
				log.Printf("CartSession middleware: failed to resolve cart id: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			sess := carts.Session(r.Context(), cartID)

			ctx := context.WithValue(r.Context(), helpers.ContextKeyCartID, cartID)
			ctx = context.WithValue(ctx, helpers.CartCountKey, sess.Cart.TotalItems())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
