package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/attarhouse/storefront/app/configs"
	"github.com/attarhouse/storefront/app/handlers"
	"github.com/attarhouse/storefront/app/middlewares"
	"github.com/attarhouse/storefront/app/repositories"
	"github.com/attarhouse/storefront/app/services"
	"github.com/attarhouse/storefront/app/utils/renderer"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	promoLookupTimeout = 5 * time.Second
	submitStepTimeout  = 10 * time.Second
	cartSnapshotTTL    = 7 * 24 * time.Hour
)

func NewRouter(db *gorm.DB, redisClient *redis.Client) http.Handler {
	render := renderer.New()

	productRepo := repositories.NewProductRepository(db)
	promoRepo := repositories.NewPromoRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	var snapshots services.CartSnapshotter
	if redisClient != nil {
		snapshots = services.NewRedisCartSnapshotter(redisClient, cartSnapshotTTL)
	}
	carts := services.NewCartManager(snapshots)

	promoSvc := services.NewPromoService(promoRepo, promoLookupTimeout)
	checkoutSvc := services.NewCheckoutService(orderRepo, promoSvc, submitStepTimeout)

	homeHandler := handlers.NewHomeHandler(productRepo, render)
	cartHandler := handlers.NewCartHandler(productRepo, carts, render)
	promoHandler := handlers.NewPromoHandler(promoSvc, carts, render)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc, orderRepo, carts, render)

	router := mux.NewRouter()
	router.Use(middlewares.CartSession(carts))

	router.HandleFunc("/", homeHandler.Home).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/cart", cartHandler.Get).Methods("GET")
	api.HandleFunc("/cart/add", cartHandler.Add).Methods("POST")
	api.HandleFunc("/cart/update", cartHandler.Update).Methods("POST")
	api.HandleFunc("/cart/remove", cartHandler.Remove).Methods("POST")
	api.HandleFunc("/cart/clear", cartHandler.Clear).Methods("POST")
	api.HandleFunc("/promo/validate", promoHandler.Validate).Methods("POST")
	api.HandleFunc("/checkout", checkoutHandler.Submit).Methods("POST")
	api.HandleFunc("/orders/{code}", checkoutHandler.Show).Methods("GET")

	return withCSRF(router)
}

func withCSRF(router *mux.Router) http.Handler {
	keys, err := configs.LoadSessionKeysFromEnv()
	var authKey []byte
	if err != nil || len(keys.AuthKey) < 32 {
		log.Printf("NewRouter: session keys unavailable, using an ephemeral CSRF key: %v", err)
		authKey = securecookie.GenerateRandomKey(32)
	} else {
		authKey = keys.AuthKey[:32]
	}

	secure := configs.LoadENV.APP_ENV == "production"
	return csrf.Protect(authKey, csrf.Secure(secure), csrf.Path("/"))(router)
}
