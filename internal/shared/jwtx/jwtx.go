package jwtx

import (
	"errors"
	"time"

	jw "github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID    string
	Email     string
	SessionID string
}

func Make(secret []byte, c Claims, ttl time.Duration) (string, error) {
	claims := jw.MapClaims{
		"sub":   c.UserID,
		"email": c.Email,
		"sid":   c.SessionID,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	return jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(secret)
}

func Parse(secret []byte, tok string) (Claims, error) {
	t, err := jw.Parse(tok, func(t *jw.Token) (any, error) { return secret, nil })
	if err != nil || !t.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mc, ok := t.Claims.(jw.MapClaims)
	if !ok {
		return Claims{}, errors.New("bad claims")
	}
	uid, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	sid, _ := mc["sid"].(string)
	if uid == "" || sid == "" {
		return Claims{}, errors.New("missing subject or session")
	}
	return Claims{UserID: uid, Email: email, SessionID: sid}, nil
}
