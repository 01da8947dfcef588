package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"ecotrack-api/journey"
	"ecotrack-api/models"
	"ecotrack-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductController handles product-related requests
type ProductController struct {
	Collection *mongo.Collection
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client) *ProductController {
	collection := client.Database(utils.DatabaseName).Collection("products")
	return &ProductController{Collection: collection}
}

// searchFilter builds the keyword filter: a case-insensitive substring
// match over name and description. Metacharacters in the keyword are
// quoted so user input never becomes a live regex.
func searchFilter(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	return bson.M{"$or": []bson.M{
		{"name": pattern},
		{"description": pattern},
	}}
}

// GetProducts retrieves the catalog, optionally filtered by ?keyword=
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := pc.Collection.Find(ctx, searchFilter(r.URL.Query().Get("keyword")))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	utils.RespondJSON(w, http.StatusOK, products)
}

// GetCategories returns the distinct category names in the catalog
func (pc *ProductController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	values, err := pc.Collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}

	categories := []string{}
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	utils.RespondJSON(w, http.StatusOK, categories)
}

func (pc *ProductController) findByID(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return models.Product{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return models.Product{}, false
	}
	return product, true
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, ok := pc.findByID(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, product)
}

// GetJourney returns the supply-chain rendering payload for a product:
// marker positions in journey order, the connecting path, a bounding
// viewport, and timeline entries.
func (pc *ProductController) GetJourney(w http.ResponseWriter, r *http.Request) {
	product, ok := pc.findByID(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, journey.Build(product.Stages))
}

// CreateProduct handles adding a new product (business/admin roles are
// enforced at the route level)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := product.Validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := product.NormalizeStages(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	product.ID = primitive.NilObjectID
	product.CreatedAt = now
	product.UpdatedAt = now

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating product")
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles updating a product
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := product.Validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := product.NormalizeStages(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := bson.M{"$set": bson.M{
		"name":                  product.Name,
		"description":           product.Description,
		"category":              product.Category,
		"materials":             product.Materials,
		"images":                product.Images,
		"sustainability_rating": product.SustainabilityRating,
		"stages":                product.Stages,
		"updated_at":            time.Now(),
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var updated models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes a product. Historical orders keep their product
// reference; there is no cascade.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Product removed"})
}
