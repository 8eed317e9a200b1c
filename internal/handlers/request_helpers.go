package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"shopapi/internal/orders"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError maps the order service's error taxonomy onto HTTP
// statuses. Unexpected errors are logged and surfaced as a generic 500.
func respondServiceError(c *gin.Context, route string, err error) {
	var (
		validationErr orders.ValidationError
		notFoundErr   orders.NotFoundError
		authErr       orders.AuthorizationError
		transitionErr orders.InvalidTransitionError
		terminalErr   orders.TerminalStateError
		stockErr      orders.InsufficientStockError
		conflictErr   orders.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		respondWithError(c, http.StatusBadRequest, route, validationErr.Msg)
	case errors.As(err, &stockErr):
		log.Printf("[%s] returning error 400: %s", route, stockErr.Error())
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"message":   "insufficient stock",
			"productId": stockErr.ProductID.Hex(),
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.As(err, &transitionErr):
		respondWithError(c, http.StatusBadRequest, route, transitionErr.Error())
	case errors.As(err, &terminalErr):
		respondWithError(c, http.StatusBadRequest, route, terminalErr.Error())
	case errors.As(err, &authErr):
		respondWithError(c, http.StatusForbidden, route, authErr.Msg)
	case errors.As(err, &notFoundErr):
		respondWithError(c, http.StatusNotFound, route, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		respondWithError(c, http.StatusConflict, route, conflictErr.Msg)
	default:
		log.Printf("[%s] unexpected error: %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "server error")
	}
}

// actorFromContext reads the identity the auth middleware injected.
func actorFromContext(c *gin.Context) (orders.Actor, bool) {
	userIDValue, ok := c.Get("userId")
	if !ok {
		return orders.Actor{}, false
	}
	userID, ok := userIDValue.(primitive.ObjectID)
	if !ok {
		return orders.Actor{}, false
	}
	role, _ := c.Get("role")
	roleValue, _ := role.(string)
	return orders.Actor{ID: userID, Role: roleValue}, true
}

func orderIDFromParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// Health reports liveness of the service and its store.
func Health(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
