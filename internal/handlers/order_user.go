package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/orders"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type shippingInfoRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	StreetAddress string `json:"streetAddress" binding:"required"`
	Apartment     string `json:"apartment"`
	Phone         string `json:"phone" binding:"required"`
	Landmark      string `json:"landmark"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required"`
	PostalCode    string `json:"postalCode" binding:"required"`
	Type          string `json:"type"`
}

type createOrderRequest struct {
	OrderItems    []createOrderItemRequest `json:"orderItems" binding:"required,dive"`
	ShippingInfo  shippingInfoRequest      `json:"shippingInfo" binding:"required"`
	PaymentMethod string                   `json:"paymentMethod" binding:"required"`
	TotalAmount   *float64                 `json:"totalAmount" binding:"required"`
	ShippingPrice float64                  `json:"shippingPrice"`
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /createOrder"
		defer handlePanic(c, route)

		actor, ok := actorFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "required fields are missing")
			return
		}

		items := make([]orders.CreateItem, 0, len(req.OrderItems))
		for _, item := range req.OrderItems {
			productID, err := primitive.ObjectIDFromHex(item.Product)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid product id")
				return
			}
			items = append(items, orders.CreateItem{ProductID: productID, Quantity: item.Quantity})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := svc.Create(ctx, actor.ID, orders.CreateInput{
			Items:         items,
			ShippingInfo:  orders.ShippingInfo(req.ShippingInfo),
			PaymentMethod: req.PaymentMethod,
			TotalAmount:   *req.TotalAmount,
			ShippingPrice: req.ShippingPrice,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[ORDER] [INFO] order created for user:", actor.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed successfully",
			"order":   order,
		})
	}
}

/* =========================
   READS
========================= */

func GetMyOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /getAllOrder"
		defer handlePanic(c, route)

		actor, ok := actorFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := svc.ListForUser(ctx, actor.ID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User orders fetched successfully",
			"orders":  list,
		})
	}
}

func GetSingleOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /getSingleOrder/:id"
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

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := svc.Get(ctx, actor, orderID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order fetched successfully",
			"order":   order,
		})
	}
}

/* =========================
   CANCEL / DELETE
========================= */

func CancelOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cancelOrder/:id"
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

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := svc.Cancel(ctx, actor, orderID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order cancelled successfully",
			"order":   order,
		})
	}
}

func DeleteOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /deleteOrder/:id"
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

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := svc.Delete(ctx, actor, orderID); err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order deleted successfully",
		})
	}
}

/* =========================
   REFUND REQUEST
========================= */

type refundRequestBody struct {
	ReturnReason string `json:"returnReason"`
	RefundReason string `json:"refundReason"`
	Feedback     string `json:"feedback"`
}

func RequestRefund(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /refund-request/:orderid"
		defer handlePanic(c, route)

		actor, ok := actorFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		orderID, ok := orderIDFromParam(c, "orderid")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var body refundRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		refund, err := svc.RequestRefund(ctx, actor.ID, orderID, orders.RefundInput(body))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":       true,
			"message":       "Return/Refund request submitted successfully",
			"refundRequest": refund,
		})
	}
}
