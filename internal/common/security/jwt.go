package security

import (
	"errors"
	"time"

	"adoptme/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateSessionToken issues the safe session token: a minimal user
// projection (id, email, role), never the password hash.
func GenerateSessionToken(userID, email, role string) (string, error) {
	return encodeToken(map[string]interface{}{
		"id":    userID,
		"email": email,
		"role":  role,
	})
}

// GenerateLegacyToken issues the legacy full-record token. The record
// map is embedded verbatim, which is why new integrations should use
// GenerateSessionToken instead.
func GenerateLegacyToken(record map[string]interface{}) (string, error) {
	return encodeToken(record)
}

func encodeToken(extra map[string]interface{}) (string, error) {
	now := time.Now()
	claims := map[string]interface{}{
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(config.AppConfig.JWTExp).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// VerifyToken checks signature and expiry and returns the decoded
// claims.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return config.AppConfig.JWTKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Helper functions to extract claims, can be used in middleware or services
func GetTokenIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["jti"].(string)
	if !ok {
		return "", errors.New("jti claim is missing or not a string")
	}
	return id, nil
}

func GetExpiryFromClaims(claims jwt.MapClaims) (time.Time, error) {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("exp claim is missing or invalid")
	}
	return exp.Time, nil
}
