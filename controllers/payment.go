// controllers/payment.go
//
// Simulated payment-gateway initiation. Every endpoint fabricates the
// gateway's payload instead of calling one, but each initiation is
// recorded as a transaction document and only a gateway callback can
// confirm it — orders are never marked paid on the client's word alone.
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"ecotrack-api/middleware"
	"ecotrack-api/models"
	"ecotrack-api/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentController handles payment-initiation stubs and callbacks
type PaymentController struct {
	Collection *mongo.Collection
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(client *mongo.Client) *PaymentController {
	collection := client.Database(utils.DatabaseName).Collection("transactions")
	return &PaymentController{Collection: collection}
}

// newTransactionRef builds a gateway-style transaction reference:
// the rail's prefix plus twelve hex characters of randomness.
func newTransactionRef(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(id[:12])
}

// paisaAmount converts a rupee amount to paisa, the unit JazzCash bills
// in. Rounded, not truncated: 19.99 rupees is 1999 paisa even though the
// float product lands just below it.
func paisaAmount(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func clientURL() string {
	if url := os.Getenv("CLIENT_URL"); url != "" {
		return url
	}
	return "http://localhost:5173"
}

func baseURL() string {
	if url := os.Getenv("BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:5000"
}

type initiateRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Phone    string  `json:"phone"`
	OrderID  string  `json:"orderId"`
}

func (pc *PaymentController) recordTransaction(ctx context.Context, claims *utils.Claims, method, reference string, req initiateRequest) error {
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return err
	}
	txn := models.PaymentTransaction{
		Reference: reference,
		Method:    method,
		OrderRef:  req.OrderID,
		UserID:    userID,
		Amount:    req.Amount,
		Phone:     req.Phone,
		Status:    models.TxnInitiated,
		CreatedAt: time.Now(),
	}
	_, err = pc.Collection.InsertOne(ctx, txn)
	return err
}

func decodeInitiation(w http.ResponseWriter, r *http.Request, requirePhone bool) (initiateRequest, bool) {
	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return req, false
	}
	if req.Amount <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "amount must be greater than zero")
		return req, false
	}
	// The transaction is bound to this order id; paying a different
	// order with it will not pass the settlement check.
	if req.OrderID == "" {
		utils.RespondError(w, http.StatusBadRequest, "orderId is required")
		return req, false
	}
	if requirePhone && req.Phone == "" {
		utils.RespondError(w, http.StatusBadRequest, "phone is required")
		return req, false
	}
	return req, true
}

// StripeCreateIntent fabricates a Stripe payment intent (demo mode)
func (pc *PaymentController) StripeCreateIntent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, ok := decodeInitiation(w, r, false)
	if !ok {
		return
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	clientSecret := "pi_demo_secret_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pc.recordTransaction(ctx, claims, models.PayStripe, clientSecret, req); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to record transaction")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"clientSecret": clientSecret,
		"message":      "Stripe payment intent created (demo mode)",
		"amount":       req.Amount,
		"currency":     req.Currency,
	})
}

// StripeConfirm stands in for Stripe's server-side confirmation webhook
// in demo mode: it flips the intent to confirmed so the pay flow can
// complete.
func (pc *PaymentController) StripeConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientSecret == "" {
		utils.RespondError(w, http.StatusBadRequest, "clientSecret is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.UpdateOne(ctx,
		bson.M{"reference": req.ClientSecret, "method": models.PayStripe, "status": models.TxnInitiated},
		bson.M{"$set": bson.M{"status": models.TxnConfirmed}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Payment intent not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment confirmed (demo mode)",
	})
}

// JazzcashInitiate fabricates a JazzCash redirect payload
func (pc *PaymentController) JazzcashInitiate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, ok := decodeInitiation(w, r, true)
	if !ok {
		return
	}

	transactionID := newTransactionRef("JC")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pc.recordTransaction(ctx, claims, models.PayJazzCash, transactionID, req); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to record transaction")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"transactionId": transactionID,
		"message":       "JazzCash payment initiated",
		"redirectUrl":   "https://sandbox.jazzcash.com.pk/CustomerPortal/transactionmanagement/merchantform/?pp_TxnRefNo=" + transactionID,
		"formFields": map[string]interface{}{
			"pp_TxnRefNo":     transactionID,
			"pp_Amount":       paisaAmount(req.Amount),
			"pp_MobileNumber": req.Phone,
			"pp_Description":  fmt.Sprintf("EcoTrack Order #%s", req.OrderID),
		},
	})
}

// EasypaisaInitiate fabricates an EasyPaisa checkout payload
func (pc *PaymentController) EasypaisaInitiate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, ok := decodeInitiation(w, r, true)
	if !ok {
		return
	}

	transactionID := newTransactionRef("EP")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pc.recordTransaction(ctx, claims, models.PayEasyPaisa, transactionID, req); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to record transaction")
		return
	}

	storeID := os.Getenv("EASYPAISA_STORE_ID")
	if storeID == "" {
		storeID = "demo_store"
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"transactionId": transactionID,
		"message":       "EasyPaisa payment initiated",
		"paymentUrl":    fmt.Sprintf("https://easypaisa.com.pk/checkout?amount=%.2f&orderId=%s", req.Amount, transactionID),
		"formFields": map[string]interface{}{
			"storeId":     storeID,
			"amount":      req.Amount,
			"postBackURL": baseURL() + "/api/payment/easypaisa/callback",
			"orderRefNum": transactionID,
			"mobileNum":   req.Phone,
		},
	})
}

// settleTransaction flips an initiated transaction on callback and sends
// the shopper back to the client.
func (pc *PaymentController) settleTransaction(w http.ResponseWriter, r *http.Request, reference string, succeeded bool) {
	status := models.TxnFailed
	if succeeded {
		status = models.TxnConfirmed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pc.Collection.UpdateOne(ctx,
		bson.M{"reference": reference, "status": models.TxnInitiated},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if succeeded {
		http.Redirect(w, r, clientURL()+"/payment/success?txn="+reference, http.StatusFound)
		return
	}
	http.Redirect(w, r, clientURL()+"/payment/failed", http.StatusFound)
}

// JazzcashCallback handles the gateway's server-to-server result post
func (pc *PaymentController) JazzcashCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResponseCode string `json:"pp_ResponseCode"`
		TxnRefNo     string `json:"pp_TxnRefNo"`
		Amount       string `json:"pp_Amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TxnRefNo == "" {
		utils.RespondError(w, http.StatusBadRequest, "Invalid callback payload")
		return
	}
	pc.settleTransaction(w, r, req.TxnRefNo, req.ResponseCode == "000")
}

// EasypaisaCallback handles EasyPaisa's postback
func (pc *PaymentController) EasypaisaCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status         string `json:"status"`
		OrderRefNumber string `json:"orderRefNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderRefNumber == "" {
		utils.RespondError(w, http.StatusBadRequest, "Invalid callback payload")
		return
	}
	pc.settleTransaction(w, r, req.OrderRefNumber, req.Status == "0000")
}
