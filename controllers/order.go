// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ecotrack-api/middleware"
	"ecotrack-api/models"
	"ecotrack-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderController handles order-related requests
type OrderController struct {
	OrderCollection       *mongo.Collection
	ProductCollection     *mongo.Collection
	TransactionCollection *mongo.Collection
	EmailService          *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		OrderCollection:       db.Collection("orders"),
		ProductCollection:     db.Collection("products"),
		TransactionCollection: db.Collection("transactions"),
		EmailService:          emailService,
	}
}

// canViewOrder reports whether the caller may see an order: its owner,
// or an admin.
func canViewOrder(claims *utils.Claims, order models.Order) bool {
	return claims.Role == models.RoleAdmin || order.UserID.Hex() == claims.UserID
}

// allowedStatusChange limits who may drive which transition: business
// and admin accounts run the state machine, a consumer may only cancel
// their own order while it is still pending.
func allowedStatusChange(claims *utils.Claims, order models.Order, to string) bool {
	if claims.Role != models.RoleConsumer {
		return true
	}
	return to == models.OrderCancelled && order.Status == models.OrderPending
}

// transactionFilter matches the one gateway transaction that can settle
// an order: same reference, same user, same rail, and initiated for this
// order id. A transaction initiated for one order can never pay another,
// even when user, method, and amount all coincide.
func transactionFilter(order models.Order, reference string) bson.M {
	return bson.M{
		"reference": reference,
		"user_id":   order.UserID,
		"method":    order.PaymentMethod,
		"order_ref": order.ID.Hex(),
	}
}

// CreateOrder persists a pending, unpaid order tied to the caller
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req struct {
		Product       string  `json:"product"`
		PaymentMethod string  `json:"paymentMethod"`
		TotalPrice    float64 `json:"totalPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if !models.ValidPaymentMethod(req.PaymentMethod) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid payment method")
		return
	}
	if req.TotalPrice <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "totalPrice must be greater than zero")
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.Product)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := oc.ProductCollection.CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	now := time.Now()
	order := models.Order{
		UserID:        userID,
		ProductID:     productID,
		PaymentMethod: req.PaymentMethod,
		TotalPrice:    req.TotalPrice,
		IsPaid:        false,
		Status:        models.OrderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := oc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, order)
}

// GetMyOrders retrieves the caller's orders, newest first
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := oc.OrderCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}

	utils.RespondJSON(w, http.StatusOK, orders)
}

func (oc *OrderController) loadOrder(w http.ResponseWriter, r *http.Request, claims *utils.Claims) (models.Order, bool) {
	vars := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return models.Order{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return models.Order{}, false
	}

	// A foreign order reads as not-found so the route is no existence
	// oracle.
	if !canViewOrder(claims, order) {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return models.Order{}, false
	}
	return order, true
}

// GetOrderByID retrieves a single order owned by the caller
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, ok := oc.loadOrder(w, r, claims)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

// UpdateOrderToPaid marks an order paid against a confirmed gateway
// transaction. The client supplies only the transaction reference it got
// from an initiation endpoint; the server checks that the transaction
// was initiated for this order, that the callback confirmed it, and that
// the amount matches, then consumes it.
func (oc *OrderController) UpdateOrderToPaid(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, ok := oc.loadOrder(w, r, claims)
	if !ok {
		return
	}

	if order.IsPaid {
		utils.RespondError(w, http.StatusBadRequest, "Order is already paid")
		return
	}
	if order.Status == models.OrderCancelled {
		utils.RespondError(w, http.StatusConflict, "Order is cancelled")
		return
	}
	if order.PaymentMethod == models.PayCOD {
		utils.RespondError(w, http.StatusBadRequest, "Cash on delivery orders are settled on delivery")
		return
	}

	var req struct {
		TransactionRef string `json:"transactionRef"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TransactionRef == "" {
		utils.RespondError(w, http.StatusBadRequest, "transactionRef is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var txn models.PaymentTransaction
	err := oc.TransactionCollection.FindOne(ctx, transactionFilter(order, req.TransactionRef)).Decode(&txn)
	if err != nil {
		utils.RespondError(w, http.StatusPaymentRequired, "No gateway transaction found for this order")
		return
	}
	if txn.Amount != order.TotalPrice {
		utils.RespondError(w, http.StatusPaymentRequired, "Transaction amount does not match order total")
		return
	}

	// Consume the transaction. The filtered update means a reference can
	// only ever pay for one order, even under concurrent requests.
	consume, err := oc.TransactionCollection.UpdateOne(ctx,
		bson.M{"_id": txn.ID, "status": models.TxnConfirmed},
		bson.M{"$set": bson.M{"status": models.TxnApplied}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if consume.MatchedCount == 0 {
		utils.RespondError(w, http.StatusPaymentRequired, "Gateway has not confirmed this transaction")
		return
	}

	now := time.Now()
	status := order.Status
	if models.CanTransition(order.Status, models.OrderProcessing) {
		status = models.OrderProcessing
	}
	update := bson.M{"$set": bson.M{
		"is_paid":    true,
		"paid_at":    now,
		"status":     status,
		"updated_at": now,
		"payment_result": models.PaymentResult{
			ID:           txn.Reference,
			Status:       "COMPLETED",
			UpdateTime:   now.Format(time.RFC3339),
			EmailAddress: claims.Email,
			PhoneNumber:  txn.Phone,
		},
	}}
	if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": order.ID}, update); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": order.ID}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to read order")
		return
	}

	// Confirmation email off the request path; delivery failures are
	// logged, never surfaced.
	go func(email string, order models.Order) {
		productName := "your product"
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var product models.Product
		if err := oc.ProductCollection.FindOne(ctx, bson.M{"_id": order.ProductID}).Decode(&product); err == nil {
			productName = product.Name
		}
		if err := oc.EmailService.SendOrderConfirmationEmail(email, productName, order); err != nil {
			log.Printf("Failed to send confirmation email to %s: %v", email, err)
		}
	}(claims.Email, order)

	utils.RespondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus drives the order state machine. Business and admin
// users may make any legal transition; a consumer may only cancel their
// own pending order.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, ok := oc.loadOrder(w, r, claims)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	if !allowedStatusChange(claims, order, req.Status) {
		utils.RespondError(w, http.StatusForbidden, "Forbidden: insufficient role")
		return
	}
	if !models.CanTransition(order.Status, req.Status) {
		utils.RespondError(w, http.StatusConflict, "Illegal status transition")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The status filter keeps a concurrent transition from double
	// applying.
	result, err := oc.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID, "status": order.Status},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusConflict, "Order status changed concurrently")
		return
	}

	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": order.ID}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to read order")
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}
