package routes

import (
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
)

// CapabilityGate builds the middleware that admits callers holding any of caps.
type CapabilityGate func(caps ...models.Capability) gin.HandlerFunc
