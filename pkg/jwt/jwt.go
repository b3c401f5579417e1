// Package jwt предоставляет валидацию JWT токенов на основе RS256.
// Сервис токены не выдаёт — подписывает их внешний identity provider,
// здесь проверяются подпись, издатель, срок действия и blacklist.
package jwt

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Claims содержит данные JWT токена.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`        // ID пользователя
	Role   string `json:"role,omitempty"` // Роль пользователя
}

// Validator проверяет JWT токены по публичному ключу RS256.
type Validator struct {
	publicKey *rsa.PublicKey
	blacklist *Blacklist // Blacklist для отзыва токенов (опционально)
	issuer    string     // Ожидаемый издатель токена
}

// Config содержит параметры для создания Validator.
type Config struct {
	PublicKeyPath string // Путь к публичному ключу (PEM)
	Issuer        string // Ожидаемый издатель токена
}

// NewValidator создаёт валидатор токенов.
func NewValidator(cfg Config) (*Validator, error) {
	publicKey, err := LoadPublicKey(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки публичного ключа: %w", err)
	}

	return &Validator{
		publicKey: publicKey,
		issuer:    cfg.Issuer,
	}, nil
}

// NewValidatorFromKey создаёт валидатор из уже загруженного ключа.
// Используется в тестах.
func NewValidatorFromKey(publicKey *rsa.PublicKey, issuer string) *Validator {
	return &Validator{
		publicKey: publicKey,
		issuer:    issuer,
	}
}

// SetBlacklist включает проверку отозванных токенов.
func (v *Validator) SetBlacklist(bl *Blacklist) {
	v.blacklist = bl
}

// Validate проверяет подпись, издателя и срок действия токена.
// При настроенном blacklist дополнительно проверяет отзыв по jti.
func (v *Validator) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("неожиданный алгоритм подписи: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	}, jwt.WithIssuer(v.issuer))

	if err != nil {
		return nil, fmt.Errorf("ошибка валидации токена: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("невалидные claims токена")
	}

	if v.blacklist != nil {
		blacklisted, err := v.blacklist.Check(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("ошибка проверки blacklist: %w", err)
		}
		if blacklisted {
			return nil, fmt.Errorf("токен отозван")
		}
	}

	return claims, nil
}

// LoadPublicKey загружает RSA публичный ключ из PEM файла.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("не удалось декодировать PEM блок из %s", path)
	}

	// Пробуем PKIX формат (PUBLIC KEY)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Пробуем PKCS#1 формат (RSA PUBLIC KEY)
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("ключ не является RSA публичным ключом")
	}

	return rsaKey, nil
}
