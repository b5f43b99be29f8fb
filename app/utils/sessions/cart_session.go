package sessions

import (
	"net/http"

	"github.com/attarhouse/storefront/app/configs"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	SessionCartKey   = "cart_session"
	CartSessionIDKey = "cart_id"
)

var store *sessions.CookieStore

func init() {
	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		// Fresh keys keep a dev setup working; carts just won't survive restarts.
		store = sessions.NewCookieStore(securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))
	} else {
		store = sessions.NewCookieStore(keys.AuthKey, keys.EncKey)
	}

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	}
}

// GetCartID returns the browsing session's cart id, minting one on first use.
func GetCartID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := store.Get(r, SessionCartKey)
	if err != nil {
		return "", err
	}

	if cartID, ok := session.Values[CartSessionIDKey].(string); ok && cartID != "" {
		return cartID, nil
	}

	newCartID := uuid.New().String()
	session.Values[CartSessionIDKey] = newCartID
	if err := session.Save(r, w); err != nil {
		return "", err
	}

	return newCartID, nil
}
