package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"tripcart/globals"
	"tripcart/middleware"
	"tripcart/utils"
)

// Anonymous sessions live long enough to cover a full trip.
const anonymousTokenTTL = 30 * 24 * time.Hour

// POST /api/auth/anonymous
// The app never asks for credentials, every device gets its own anonymous
// identity and the trip join flow links devices together.
func AnonymousLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := "anon_" + utils.GenerateRandomString(16)

	claims := middleware.Claims{
		UserID:    userID,
		Anonymous: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(anonymousTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":  signed,
		"userid": userID,
	})
}
