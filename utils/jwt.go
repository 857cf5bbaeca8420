package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec de tokens. Una sola ruta de verificación: toda ruta protegida
// pasa por ParseToken, que valida firma, expiración, issuer y audience.

var (
	jwtSecret   []byte
	jwtIssuer   string
	jwtAudience string
	jwtExpiry   = 24 * time.Hour
)

func InitJWT(secret, issuer, audience string, expiry time.Duration) {
	jwtSecret = []byte(secret)
	jwtIssuer = issuer
	jwtAudience = audience
	if expiry > 0 {
		jwtExpiry = expiry
	}
}

type CustomClaims struct {
	Rol string `json:"rol"`
	jwt.RegisteredClaims
}

// IdUsuario devuelve el sub numérico del token.
func (c *CustomClaims) IdUsuario() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid user id in token")
	}
	return uint(id), nil
}

// GenerateToken firma un token HS256 con sub e issuer/audience de la
// configuración. Expira es el instante de expiración, para la UI.
func GenerateToken(idUsuario uint, rol string) (token string, expira time.Time, err error) {
	now := time.Now()
	expira = now.Add(jwtExpiry)

	claims := &CustomClaims{
		Rol: rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(idUsuario), 10),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expira),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	return token, expira, err
}

// ParseToken verifica y devuelve los claims. Nunca entra en pánico:
// cualquier token malformado o adulterado produce error.
func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret, nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if claims.Rol == "" {
		return nil, errors.New("missing rol claim")
	}
	return claims, nil
}
