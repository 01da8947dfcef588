package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ecotrack-api/middleware"
	"ecotrack-api/models"
	"ecotrack-api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserController handles authentication and profile requests
type UserController struct {
	Collection *mongo.Collection
}

// NewUserController creates a new UserController
func NewUserController(client *mongo.Client) *UserController {
	collection := client.Database(utils.DatabaseName).Collection("users")
	return &UserController{Collection: collection}
}

// authResponse is what register and login hand back: the user's public
// fields plus a bearer token the client attaches to every later request.
type authResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Token   string `json:"token"`
}

func newAuthResponse(user models.User) (authResponse, error) {
	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return authResponse{}, err
	}
	return authResponse{
		ID:      user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Company: user.Company,
		Phone:   user.Phone,
		Token:   token,
	}, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

func validateRegistration(req registerRequest) string {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return "Name, email and password are required"
	}
	if len(req.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	if req.Role != "" && !models.ValidRegistrationRole(req.Role) {
		return "Role must be consumer or business"
	}
	return ""
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if msg := validateRegistration(req); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Check if user already exists
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondError(w, http.StatusConflict, "User already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleConsumer
	}

	now := time.Now()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      role,
		Company:   req.Company,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := uc.Collection.InsertOne(ctx, user)
	if err != nil {
		// The unique index catches the race two concurrent registrations
		// can win past the count check.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondError(w, http.StatusConflict, "User already exists")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Error creating user")
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	resp, err := newAuthResponse(user)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The same message for an unknown email and a wrong password, so the
	// endpoint is not an account oracle.
	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	resp, err := newAuthResponse(user)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile. The password
// is never updatable through this route.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Company *string `json:"company"`
		Phone   *string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil && *req.Name != "" {
		set["name"] = *req.Name
	}
	if req.Company != nil {
		set["company"] = *req.Company
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != claims.Email {
			count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": email})
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Database error")
				return
			}
			if count > 0 {
				utils.RespondError(w, http.StatusConflict, "Email already in use")
				return
			}
		}
		set["email"] = email
	}

	var user models.User
	err = uc.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
	).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	// Re-read so the response reflects the update, and issue a fresh
	// token since the email claim may have changed.
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp, err := newAuthResponse(user)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}
