package handlers

import (
	"fmt"
	"io"
	"net/http"

	"finanzas/api/logger"
	"finanzas/api/models"
	"finanzas/api/sse"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// HandleEvents streams transaction-created events to the dashboard.
// EventSource cannot set headers, so the JWT arrives as a query
// parameter instead of going through the auth middleware.
func HandleEvents(c *gin.Context) {
	claims, err := authenticateEventStream(c)
	if err != nil {
		return
	}

	stream := sse.Subscribe(claims.Sub)
	defer sse.Unsubscribe(claims.Sub, stream)

	logger.Get().Info("event stream opened", zap.String("user_id", claims.Sub))
	defer logger.Get().Info("event stream closed", zap.String("user_id", claims.Sub))

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.String(http.StatusInternalServerError, "Streaming unsupported!")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-stream.Events:
			if !ok {
				return false
			}
			c.Writer.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()
			return true
		case <-c.Request.Context().Done():
			return false
		case <-stream.Done:
			return false
		}
	})
}

func authenticateEventStream(c *gin.Context) (*models.SupabaseClaims, error) {
	tokenString := c.DefaultQuery("token", "")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return nil, fmt.Errorf("missing or invalid token")
	}

	claims := &models.SupabaseClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if Cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT secret not configured")
		}
		return []byte(Cfg.JWTSecret), nil
	})

	if err != nil {
		logger.Get().Warn("failed to parse event stream token", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, err
	}

	if !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Issuer != Cfg.AuthURL+"/auth/v1" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token issuer"})
		return nil, fmt.Errorf("invalid token issuer")
	}

	return claims, nil
}
