package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"commerce-service/models"
)

var ErrInvalidToken = errors.New("invalid token")

// ParseToken 解出 token 中的用户身份（user_id 和 role）。
// token 的签发在认证服务，这里只做校验和解析。
func ParseToken(tokenString, secret string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return models.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Actor{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return models.Actor{}, ErrInvalidToken
	}

	role := models.RoleCustomer
	if r, ok := claims["role"].(string); ok && r != "" {
		role = r
	}

	return models.Actor{ID: int(userID), Role: role}, nil
}
