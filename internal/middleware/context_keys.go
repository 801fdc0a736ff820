package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ownerIDKey stores the authenticated owner's ID in the request context.
const ownerIDKey = contextKey("ownerID")

// WithOwnerID returns a copy of ctx carrying the owner ID.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// GetOwnerIDFromContext retrieves the authenticated owner ID from the request
// context. It returns the ID and a boolean indicating if it was found.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	ownerID, ok := c.Request.Context().Value(ownerIDKey).(string)
	if !ok || ownerID == "" {
		return "", false
	}
	return ownerID, true
}
