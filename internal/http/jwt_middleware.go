package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentor-collab/internal/domain"
	"mentor-collab/internal/service"
)

const authClaimsKey = "auth_claims"

// JWTAuthMiddleware exige un access token de mentor y deja sus claims en el
// contexto. Los rechazos usan los mismos tipos de error que el resto de la API.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !jwtSvc.Enabled() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication not configured"})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, domain.ErrMissingToken)
			return
		}
		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil || claims.MentorID == "" {
			abortUnauthorized(c, domain.ErrInvalidToken)
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", `Bearer realm="mentor-collab"`)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

// GetAuthClaims obtiene los claims del mentor autenticado.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// actorMentorID devuelve el mentor autenticado, o "" si la autenticacion esta apagada.
func actorMentorID(c *gin.Context) string {
	claims, ok := GetAuthClaims(c)
	if !ok {
		return ""
	}
	return claims.MentorID
}
