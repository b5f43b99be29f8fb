package helpers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	ContextKeyCartID contextKey = "cartID"
	CartCountKey     contextKey = "cart_count"
)

// CartIDFromContext returns the cart session id stashed by the cart middleware.
func CartIDFromContext(r *http.Request) (string, bool) {
	cartID, ok := r.Context().Value(ContextKeyCartID).(string)
	return cartID, ok && cartID != ""
}

func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = "Attar House"
	}
	if _, exists := pageSpecificData["CartCount"]; !exists {
		pageSpecificData["CartCount"] = 0
	}

	if cartCountVal := r.Context().Value(CartCountKey); cartCountVal != nil {
		if count, ok := cartCountVal.(int); ok {
			pageSpecificData["CartCount"] = count
		} else {
			log.Printf("GetBaseData: CartCount in context is not of type int. Value: %+v", cartCountVal)
		}
	}

	if status := r.URL.Query().Get("status"); status != "" {
		pageSpecificData["MessageStatus"] = status
	} else {
		pageSpecificData["MessageStatus"] = ""
	}
	if msg := r.URL.Query().Get("message"); msg != "" {
		pageSpecificData["Message"] = msg
	} else {
		pageSpecificData["Message"] = ""
	}

	return pageSpecificData
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s is invalid.", err.Field())
		}
	}
	return errorMessages
}
