package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/passionatedev1128/everwell-sub001/internal/utils"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// login handles user login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// 1. Find User
	var user models.UserAccount
	if err := r.db.Where("email = ?", loginReq.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// 2. Check Password
	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// 3. Update Last Login
	now := time.Now()
	user.LastLogin = &now
	r.db.Save(&user)

	// 4. Generate Tokens
	accessToken, refreshToken, err := utils.GenerateTokens(&user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}

// register handles user registration
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if regReq.Email == "" || len(regReq.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
		return
	}

	// 1. Hash Password
	hashedPassword, err := utils.HashPassword(regReq.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	// 2. Create User (always a customer; admins are provisioned via seed)
	user := models.UserAccount{
		Email:    regReq.Email,
		Password: hashedPassword,
		Name:     regReq.Name,
		Role:     models.RoleCustomer,
	}

	if err := r.db.Create(&user).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create user (email might exist)")
		return
	}

	// 3. Generate Tokens for immediate login
	accessToken, refreshToken, err := utils.GenerateTokens(&user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "User created but failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}

// logout handles user logout
func (r *Router) logout(w http.ResponseWriter, req *http.Request) {
	// Stateless JWTs; the client discards its tokens
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
