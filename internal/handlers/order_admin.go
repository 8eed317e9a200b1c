package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/models"
	"shopapi/internal/orders"
)

type updateOrderStatusRequest struct {
	NewStatus string `json:"newStatus" binding:"required"`
}

func UpdateOrderStatus(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /updateOrderStatus/:id"
		defer handlePanic(c, route)

		actor, ok := actorFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		orderID, ok := orderIDFromParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "newStatus is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := svc.UpdateStatus(ctx, actor, orderID, models.OrderStatus(req.NewStatus))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order status updated to " + req.NewStatus,
			"order":   order,
		})
	}
}

func AdminListOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		actor, ok := actorFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		in := orders.AdminListInput{
			Status:    strings.TrimSpace(c.Query("status")),
			Buyer:     strings.TrimSpace(c.Query("buyer")),
			Seller:    strings.TrimSpace(c.Query("seller")),
			Page:      page,
			Limit:     limit,
			SortBy:    strings.TrimSpace(c.Query("sortBy")),
			SortOrder: strings.TrimSpace(c.Query("sortOrder")),
		}
		if start := strings.TrimSpace(c.Query("startDate")); start != "" {
			t, err := time.Parse(time.RFC3339, start)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid startDate")
				return
			}
			in.StartDate = &t
		}
		if end := strings.TrimSpace(c.Query("endDate")); end != "" {
			t, err := time.Parse(time.RFC3339, end)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid endDate")
				return
			}
			in.EndDate = &t
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := svc.AdminList(ctx, actor, in)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Orders fetched successfully",
			"total":   result.Total,
			"page":    result.Page,
			"pages":   result.Pages,
			"data":    result.Orders,
		})
	}
}

type bulkDeleteRequest struct {
	OrderIDs []string `json:"orderIds" binding:"required,min=1"`
}

func BulkDeleteOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/orders/delete"
		defer handlePanic(c, route)

		actor, ok := actorFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req bulkDeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "no orderIds provided")
			return
		}

		// Malformed ids are reported per item, keeping the batch best effort.
		orderIDs := make([]primitive.ObjectID, 0, len(req.OrderIDs))
		skipped := make([]orders.SkippedOrder, 0)
		for _, raw := range req.OrderIDs {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				skipped = append(skipped, orders.SkippedOrder{OrderID: raw, Reason: "invalid order id"})
				continue
			}
			orderIDs = append(orderIDs, id)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		deleted, svcSkipped := svc.BulkDelete(ctx, actor.ID, orderIDs)
		skipped = append(skipped, svcSkipped...)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order deletion process completed",
			"deleted": deleted,
			"skipped": skipped,
		})
	}
}
