package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/models"
)

// Actor identifies who is performing an operation. Authorization is
// role-parameterized here instead of being duplicated per handler.
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Service orchestrates the order lifecycle: creation, cancellation,
// status progression, deletion and refund intake. All stock mutations go
// through the ProductStore ledger contract.
type Service struct {
	orders    OrderStore
	products  ProductStore
	users     UserStore
	addresses AddressStore
	refunds   RefundStore
	notifier  Notifier
	tx        TxRunner
	now       func() time.Time
}

func NewService(
	orders OrderStore,
	products ProductStore,
	users UserStore,
	addresses AddressStore,
	refunds RefundStore,
	notifier Notifier,
	tx TxRunner,
) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		users:     users,
		addresses: addresses,
		refunds:   refunds,
		notifier:  notifier,
		tx:        tx,
		now:       time.Now,
	}
}

type CreateItem struct {
	ProductID primitive.ObjectID
	Quantity  int
}

type ShippingInfo struct {
	FirstName     string
	LastName      string
	StreetAddress string
	Apartment     string
	Phone         string
	Landmark      string
	City          string
	State         string
	PostalCode    string
	Type          string
}

type CreateInput struct {
	Items         []CreateItem
	ShippingInfo  ShippingInfo
	PaymentMethod string
	TotalAmount   float64
	ShippingPrice float64
}

// Create places an order for userID. The address snapshot, the order
// document, the user's order history and every stock decrement run in
// one unit of work. Unit prices are snapshotted from the catalog at
// order time.
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, in CreateInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ValidationError{Msg: "no items to order"}
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, ValidationError{Msg: "quantity must be greater than zero"}
		}
	}
	if in.PaymentMethod != models.PaymentMethodOnline && in.PaymentMethod != models.PaymentMethodCOD {
		return nil, ValidationError{Msg: "invalid payment method"}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFoundError{Kind: "user", ID: userID.Hex()}
	}

	var order *models.Order
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		items := make([]models.OrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			product, err := s.products.FindByID(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return NotFoundError{Kind: "product", ID: item.ProductID.Hex()}
			}
			ok, err := s.products.CheckAvailability(txCtx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return InsufficientStockError{
					ProductID: item.ProductID,
					Available: product.Stock,
					Requested: item.Quantity,
				}
			}
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Title:     product.Title,
				Price:     product.Price,
				Quantity:  item.Quantity,
			})
		}

		addressID, err := s.addresses.CreateSnapshot(txCtx, s.buildAddressSnapshot(userID, in.ShippingInfo))
		if err != nil {
			return err
		}

		paymentStatus := models.PaymentPending
		isPaid := false
		if in.PaymentMethod == models.PaymentMethodOnline {
			paymentStatus = models.PaymentCompleted
			isPaid = true
		}

		order = &models.Order{
			UserID:            userID,
			OrderItems:        items,
			ShippingAddressID: addressID,
			PaymentMethod:     in.PaymentMethod,
			PaymentStatus:     paymentStatus,
			OrderStatus:       models.StatusProcessing,
			TotalAmount:       in.TotalAmount,
			ShippingPrice:     in.ShippingPrice,
			IsPaid:            isPaid,
			CreatedAt:         s.now(),
		}

		orderID, err := s.orders.Insert(txCtx, order)
		if err != nil {
			return err
		}
		order.ID = orderID

		if err := s.users.AppendOrder(txCtx, userID, orderID); err != nil {
			return err
		}

		// The conditional decrement is the reservation: it fails if a
		// concurrent order took the stock between the check above and now.
		for _, item := range in.Items {
			if err := s.products.DecrementStock(txCtx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) buildAddressSnapshot(userID primitive.ObjectID, info ShippingInfo) *models.ShippingAddress {
	addressType := info.Type
	if addressType == "" {
		addressType = "Home"
	}
	return &models.ShippingAddress{
		UserID:        userID,
		FirstName:     info.FirstName,
		LastName:      info.LastName,
		StreetAddress: info.StreetAddress,
		Apartment:     info.Apartment,
		Phone:         info.Phone,
		AddressLine:   info.StreetAddress,
		Landmark:      info.Landmark,
		City:          info.City,
		State:         info.State,
		PostalCode:    info.PostalCode,
		Type:          addressType,
		CreatedAt:     s.now(),
	}
}

// ListForUser returns the actor's own orders, latest first.
func (s *Service) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// Get fetches one order; non-admin actors may only read their own.
func (s *Service) Get(ctx context.Context, actor Actor, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.UserID != actor.ID {
		return nil, AuthorizationError{Msg: "unauthorized access to this order"}
	}
	return order, nil
}

// Cancel moves a non-terminal order to Cancelled and restocks every
// line item. Owner or admin only.
func (s *Service) Cancel(ctx context.Context, actor Actor, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.UserID != actor.ID {
		return nil, AuthorizationError{Msg: "you are not authorized to cancel this order"}
	}
	if order.OrderStatus.IsTerminal() {
		return nil, TerminalStateError{Status: order.OrderStatus}
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		order.OrderStatus = models.StatusCancelled
		order.PaymentStatus = models.PaymentFailed
		order.DeliveredAt = nil
		if err := s.orders.Replace(txCtx, order); err != nil {
			return err
		}
		return s.restock(txCtx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus advances an order through the forward progression.
// Admin only; Delivered carries payment side effects and fans out
// notifications to the buyer and every distinct seller in the order.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, orderID primitive.ObjectID, newStatus models.OrderStatus) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, AuthorizationError{Msg: "access denied, admins only"}
	}
	if !newStatus.IsForwardStatus() {
		return nil, ValidationError{Msg: fmt.Sprintf("invalid status: %s", newStatus)}
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus.IsTerminal() {
		return nil, TerminalStateError{Status: order.OrderStatus}
	}
	if newStatus.Rank() <= order.OrderStatus.Rank() {
		return nil, InvalidTransitionError{From: order.OrderStatus, To: newStatus}
	}

	order.OrderStatus = newStatus
	if newStatus == models.StatusDelivered {
		deliveredAt := s.now()
		order.DeliveredAt = &deliveredAt
		order.PaymentStatus = models.PaymentCompleted
		order.IsPaid = true
	}
	if err := s.orders.Replace(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Notify(models.Notification{
		RecipientID:  order.UserID,
		SenderID:     actor.ID,
		Type:         models.NotificationTypeOrder,
		Message:      fmt.Sprintf("Your order status has been changed to %s", newStatus),
		RelatedOrder: order.ID,
	})
	for _, sellerID := range s.distinctSellers(ctx, order) {
		s.notifier.Notify(models.Notification{
			RecipientID:  sellerID,
			SenderID:     actor.ID,
			Type:         models.NotificationTypeOrder,
			Message:      fmt.Sprintf("An order containing your product has been marked as %s", newStatus),
			RelatedOrder: order.ID,
		})
	}
	return order, nil
}

// Delete hard-removes a non-delivered order and restocks its items.
// Owner or admin only. Cancelled orders were already restocked at
// cancellation, so their stock is left untouched.
func (s *Service) Delete(ctx context.Context, actor Actor, orderID primitive.ObjectID) error {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && order.UserID != actor.ID {
		return AuthorizationError{Msg: "you are not authorized to delete this order"}
	}
	if order.OrderStatus == models.StatusDelivered {
		return ConflictError{Msg: "delivered orders cannot be deleted"}
	}

	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if order.OrderStatus != models.StatusCancelled {
			if err := s.restock(txCtx, order); err != nil {
				return err
			}
		}
		return s.orders.Delete(txCtx, order.ID)
	})
}

// SkippedOrder explains why an id in a bulk delete was not processed.
type SkippedOrder struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// BulkDelete processes each id independently: restock, delete, notify
// the buyer. Missing or failing ids are reported, never fatal.
func (s *Service) BulkDelete(ctx context.Context, adminID primitive.ObjectID, orderIDs []primitive.ObjectID) (deleted []string, skipped []SkippedOrder) {
	deleted = make([]string, 0, len(orderIDs))
	skipped = make([]SkippedOrder, 0)

	for _, orderID := range orderIDs {
		order, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			skipped = append(skipped, SkippedOrder{OrderID: orderID.Hex(), Reason: "server error"})
			continue
		}
		if order == nil {
			skipped = append(skipped, SkippedOrder{OrderID: orderID.Hex(), Reason: "order not found"})
			continue
		}

		err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.restock(txCtx, order); err != nil {
				return err
			}
			return s.orders.Delete(txCtx, order.ID)
		})
		if err != nil {
			skipped = append(skipped, SkippedOrder{OrderID: orderID.Hex(), Reason: "delete failed"})
			continue
		}

		deleted = append(deleted, orderID.Hex())
		s.notifier.Notify(models.Notification{
			RecipientID:  order.UserID,
			SenderID:     adminID,
			Type:         models.NotificationTypeOrder,
			Message:      fmt.Sprintf("Your order %s has been deleted by admin.", orderID.Hex()),
			RelatedOrder: order.ID,
		})
	}
	return deleted, skipped
}

type RefundInput struct {
	ReturnReason string
	RefundReason string
	Feedback     string
}

// RequestRefund opens a return/refund workflow for a delivered order
// owned by userID and moves the order to Refund Processing.
func (s *Service) RequestRefund(ctx context.Context, userID, orderID primitive.ObjectID, in RefundInput) (*models.RefundRequest, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, NotFoundError{Kind: "order for this user", ID: orderID.Hex()}
	}
	if len(order.OrderItems) == 0 {
		return nil, ValidationError{Msg: "no products found in order"}
	}
	if order.OrderStatus != models.StatusDelivered {
		return nil, ConflictError{Msg: "only delivered orders can be refunded"}
	}

	order.OrderStatus = models.StatusRefundProcessing
	if err := s.orders.Replace(ctx, order); err != nil {
		return nil, err
	}

	refund := &models.RefundRequest{
		Reference:    uuid.NewString(),
		UserID:       userID,
		ProductID:    order.OrderItems[0].ProductID,
		OrderID:      orderID,
		ReturnReason: in.ReturnReason,
		RefundReason: in.RefundReason,
		Feedback:     in.Feedback,
		Status:       "Pending",
		CreatedAt:    s.now(),
	}
	refundID, err := s.refunds.Insert(ctx, refund)
	if err != nil {
		return nil, err
	}
	refund.ID = refundID
	return refund, nil
}

// AdminListResult is one page of the filtered admin order listing.
type AdminListResult struct {
	Orders []models.Order
	Total  int64
	Page   int64
	Pages  int64
}

type AdminListInput struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Buyer     string
	Seller    string
	Page      int64
	Limit     int64
	SortBy    string
	SortOrder string
}

// AdminList returns orders filtered by status, date range, buyer
// (name or email) and seller. Admin only.
func (s *Service) AdminList(ctx context.Context, actor Actor, in AdminListInput) (*AdminListResult, error) {
	if !actor.IsAdmin() {
		return nil, AuthorizationError{Msg: "access denied, admins only"}
	}

	q := OrderQuery{
		Status:    models.OrderStatus(in.Status),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Page:      in.Page,
		Limit:     in.Limit,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}

	if in.Buyer != "" {
		buyer, err := s.users.FindByNameOrEmail(ctx, in.Buyer)
		if err != nil {
			return nil, err
		}
		if buyer == nil {
			return &AdminListResult{Orders: []models.Order{}, Page: q.Page}, nil
		}
		q.BuyerID = &buyer.ID
	}

	if in.Seller != "" {
		sellerID, err := primitive.ObjectIDFromHex(in.Seller)
		if err != nil {
			return nil, ValidationError{Msg: "invalid seller id"}
		}
		productIDs, err := s.products.FindIDsBySeller(ctx, sellerID)
		if err != nil {
			return nil, err
		}
		if productIDs == nil {
			productIDs = []primitive.ObjectID{}
		}
		q.ProductIDs = productIDs
	}

	orders, total, err := s.orders.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	pages := total / q.Limit
	if total%q.Limit != 0 {
		pages++
	}
	return &AdminListResult{Orders: orders, Total: total, Page: q.Page, Pages: pages}, nil
}

func (s *Service) findOrder(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFoundError{Kind: "order", ID: orderID.Hex()}
	}
	return order, nil
}

// restock returns reserved stock to the catalog. A product that vanished
// since the order was placed is a no-op, matching IncrementStock.
func (s *Service) restock(ctx context.Context, order *models.Order) error {
	for _, item := range order.OrderItems {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// distinctSellers resolves the unique seller ids behind an order's
// products. Lookup failures only cost the seller fan-out, never the
// status update itself.
func (s *Service) distinctSellers(ctx context.Context, order *models.Order) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		log.Println("[ORDER] [WARN] seller lookup for notifications failed:", err)
		return nil
	}
	seen := make(map[primitive.ObjectID]bool, len(products))
	sellers := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		if p.CreatedBy.IsZero() || seen[p.CreatedBy] {
			continue
		}
		seen[p.CreatedBy] = true
		sellers = append(sellers, p.CreatedBy)
	}
	return sellers
}
