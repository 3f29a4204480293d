package jwtx_test

import (
	"testing"
	"time"

	"diary-service/internal/shared/jwtx"
)

var secret = []byte("test-secret")

func TestMakeParse_RoundTrip(t *testing.T) {
	in := jwtx.Claims{UserID: "u1", Email: "a@b.c", SessionID: "s1"}
	tok, err := jwtx.Make(secret, in, time.Hour)
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	out, err := jwtx.Parse(secret, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out != in {
		t.Errorf("claims = %+v, want %+v", out, in)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tok, _ := jwtx.Make(secret, jwtx.Claims{UserID: "u1", SessionID: "s1"}, time.Hour)
	if _, err := jwtx.Parse([]byte("other"), tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	tok, _ := jwtx.Make(secret, jwtx.Claims{UserID: "u1", SessionID: "s1"}, -time.Minute)
	if _, err := jwtx.Parse(secret, tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParse_MissingSession(t *testing.T) {
	tok, _ := jwtx.Make(secret, jwtx.Claims{UserID: "u1"}, time.Hour)
	if _, err := jwtx.Parse(secret, tok); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := jwtx.Parse(secret, "not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
