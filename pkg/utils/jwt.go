package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorClaims are issued by the TravelQuoteBot web app when an operator
// signs in.
type OperatorClaims struct {
	OperatorID string `json:"operatorId"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func CreateOperatorToken(secret []byte, claims OperatorClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateOperatorToken(secret []byte, tokenString string) (*OperatorClaims, error) {
	claims := &OperatorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.OperatorID == "" {
		return nil, fmt.Errorf("token has no operatorId claim")
	}
	return claims, nil
}
