package middleware

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"ecotrack-api/utils"
)

// Recover catches handler panics and returns the API's generic 500. The
// underlying message is only included outside production.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				message := "Something went wrong!"
				if os.Getenv("APP_ENV") != "production" {
					message = fmt.Sprintf("Something went wrong: %v", rec)
				}
				utils.RespondError(w, http.StatusInternalServerError, message)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
