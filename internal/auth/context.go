package auth

import "github.com/gin-gonic/gin"

const actorIDKey = "actorID"

// GetActorID returns the resolved acting user's ID or empty string.
func GetActorID(c *gin.Context) string {
	if v, ok := c.Get(actorIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func setActorID(c *gin.Context, id string) {
	c.Set(actorIDKey, id)
}
