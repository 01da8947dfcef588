package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestValidateRegistration(t *testing.T) {
	valid := registerRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	}
	assert.Empty(t, validateRegistration(valid))

	withRole := valid
	withRole.Role = "business"
	assert.Empty(t, validateRegistration(withRole))
}

func TestValidateRegistrationMissingFields(t *testing.T) {
	req := registerRequest{Email: "a@b.com", Password: "secret123"}
	assert.NotEmpty(t, validateRegistration(req))

	req = registerRequest{Name: "Asha", Password: "secret123"}
	assert.NotEmpty(t, validateRegistration(req))

	req = registerRequest{Name: "Asha", Email: "a@b.com"}
	assert.NotEmpty(t, validateRegistration(req))
}

func TestValidateRegistrationShortPassword(t *testing.T) {
	req := registerRequest{Name: "Asha", Email: "a@b.com", Password: "12345"}
	assert.NotEmpty(t, validateRegistration(req))
}

func TestValidateRegistrationAdminRejected(t *testing.T) {
	// Admin accounts are provisioned out of band; nobody registers as
	// one.
	req := registerRequest{Name: "Asha", Email: "a@b.com", Password: "secret123", Role: "admin"}
	assert.NotEmpty(t, validateRegistration(req))

	req.Role = "superuser"
	assert.NotEmpty(t, validateRegistration(req))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("email already registered", func(mt *mtest.T) {
		uc := &UserController{Collection: mt.Coll}
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		// The existence count finds a user; registration stops with a
		// conflict before any insert.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "n", Value: int32(1)}}),
		)

		req := httptest.NewRequest("POST", "/api/auth/register",
			strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"secret123"}`))
		rec := httptest.NewRecorder()

		uc.Register(rec, req)

		assert.Equal(mt, http.StatusConflict, rec.Code)
		assert.Contains(mt, rec.Body.String(), "already exists")
	})

	mt.Run("concurrent registration loses the race", func(mt *mtest.T) {
		uc := &UserController{Collection: mt.Coll}
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		// The count sees nothing, but the unique index rejects the
		// insert: the second of two concurrent registrations still gets
		// a conflict, not a 500.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: ecotrack.users index: email_1",
			}),
		)

		req := httptest.NewRequest("POST", "/api/auth/register",
			strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"secret123"}`))
		rec := httptest.NewRecorder()

		uc.Register(rec, req)

		assert.Equal(mt, http.StatusConflict, rec.Code)
		assert.Contains(mt, rec.Body.String(), "already exists")
	})
}
