package domain

import (
	"testing"
	"time"
)

func TestAccountHasPermission(t *testing.T) {
	acc := &Account{Permissions: []Permission{{Name: PermissionHacker}}}
	if !acc.HasPermission(PermissionHacker) {
		t.Fatal("expected hacker permission")
	}
	if acc.HasPermission(PermissionAdmin) {
		t.Fatal("unexpected admin permission")
	}

	// Unloaded set never matches.
	if (&Account{}).HasPermission(PermissionHacker) {
		t.Fatal("empty permission set matched")
	}
}

func TestConfirmationTokenExpired(t *testing.T) {
	now := time.Now()
	tok := &ConfirmationToken{ExpiresAt: now.Add(time.Minute)}
	if tok.Expired(now) {
		t.Fatal("future expiry reported expired")
	}
	if !tok.Expired(now.Add(2 * time.Minute)) {
		t.Fatal("past expiry not reported expired")
	}
	// Exactly at the boundary the token is still redeemable.
	if tok.Expired(tok.ExpiresAt) {
		t.Fatal("boundary instant reported expired")
	}
}
