package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

type UserController struct {
	auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{auth: auth}
}

// Register creates a customer account.
func (uc *UserController) Register(c *gin.Context) {
	var input services.RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	respondResult(c, uc.auth.RegisterUser(c.Request.Context(), input), http.StatusCreated)
}

// Login user -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidFields)
		return
	}

	user, err := uc.auth.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondError(c, http.StatusUnauthorized, err)
			return
		}
		utils.ErrorLogger.WithError(err).Error("Login failed")
		utils.RespondError(c, http.StatusInternalServerError, services.ErrSomethingWentWrong)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, user.Email)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, services.ErrSomethingWentWrong)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": services.UserProfile{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Phone:   user.Phone,
			Address: user.Address,
			Role:    user.Role,
		},
	})
}

// GetProfile returns the signed-in user's profile.
func (uc *UserController) GetProfile(c *gin.Context) {
	session, ok := services.SessionFromContext(c.Request.Context())
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, services.ErrUnauthorized)
		return
	}

	profile, err := uc.auth.GetUserByID(c.Request.Context(), session.UserID)
	if err != nil {
		respondEnvelopeError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", profile)
}
