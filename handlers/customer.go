package handlers

import (
	"net/http"

	"nekokin/middleware"
	"nekokin/services/customer"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the caller's own account.
func GetProfile(c *gin.Context) {
	actor := actorFrom(c)
	cust, err := CustomerSvc.Get(actor, actor.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// GetCustomer returns one customer account, self or admin only.
func GetCustomer(c *gin.Context) {
	cust, err := CustomerSvc.Get(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// ListCustomers returns every account; admin only.
func ListCustomers(c *gin.Context) {
	items, err := CustomerSvc.List(actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateCustomer patches the mutable profile fields.
func UpdateCustomer(c *gin.Context) {
	var input customer.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	cust, err := CustomerSvc.UpdateProfile(actorFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ChangePassword rotates the caller's password.
func ChangePassword(c *gin.Context) {
	var input changePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	id := c.GetString(middleware.ContextCustomerID)
	if err := CustomerSvc.ChangePassword(actorFrom(c), id, input.CurrentPassword, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// AddPet registers a pet under the caller's account.
func AddPet(c *gin.Context) {
	var input customer.CreatePetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	actor := actorFrom(c)
	pet, err := CustomerSvc.AddPet(actor, actor.CustomerID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pet)
}

// ListPets returns the caller's pets.
func ListPets(c *gin.Context) {
	actor := actorFrom(c)
	ownerID := actor.CustomerID
	if q := c.Query("customerId"); q != "" {
		ownerID = q
	}
	pets, err := CustomerSvc.ListPets(actor, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// GetPet returns one pet record.
func GetPet(c *gin.Context) {
	pet, err := CustomerSvc.GetPet(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// UpdatePet patches a pet record.
func UpdatePet(c *gin.Context) {
	var input customer.UpdatePetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	pet, err := CustomerSvc.UpdatePet(actorFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// DeletePet removes a pet record.
func DeletePet(c *gin.Context) {
	if err := CustomerSvc.DeletePet(actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pet deleted"})
}
