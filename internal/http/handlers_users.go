package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/David-H-L/Backend/internal/query"
	"github.com/David-H-L/Backend/internal/service"
)

type createUserRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	PhoneNumber      string `json:"phoneNumber"`
	PhoneCountryCode string `json:"phoneCountryCode"`
	Country          string `json:"country"`
	City             string `json:"city"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	Password         string `json:"password"`
}

func (a *API) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := a.Users.Create(c.Request.Context(), service.CreateUserInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PhoneNumber:      req.PhoneNumber,
		PhoneCountryCode: req.PhoneCountryCode,
		Country:          req.Country,
		City:             req.City,
		Email:            req.Email,
		Role:             req.Role,
		Password:         req.Password,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusCreated, "User created successfully", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := a.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", result)
}

func (a *API) GetProfile(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := a.Users.Get(c.Request.Context(), claims.Subject)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "User profile", user)
}

func (a *API) GetUsers(c *gin.Context) {
	filter := query.NormalizeUserFilter(c.Request.URL.Query())
	users, err := a.Users.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Users fetched successfully", users)
}

func (a *API) GetUser(c *gin.Context) {
	user, err := a.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "User fetched successfully", user)
}

type updateUserRequest struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	PhoneNumber      *string `json:"phoneNumber"`
	PhoneCountryCode *string `json:"phoneCountryCode"`
	Country          *string `json:"country"`
	City             *string `json:"city"`
	Email            *string `json:"email"`
	Role             *string `json:"role"`
	Password         *string `json:"password"`
}

func (a *API) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Role != nil {
		claims, ok := claimsFrom(c)
		if !ok || !claims.Role.IsAdmin() {
			fail(c, http.StatusForbidden, "Unauthorized: Only admins can change roles")
			return
		}
	}
	affected, err := a.Users.Update(c.Request.Context(), c.Param("id"), service.UpdateUserInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PhoneNumber:      req.PhoneNumber,
		PhoneCountryCode: req.PhoneCountryCode,
		Country:          req.Country,
		City:             req.City,
		Email:            req.Email,
		Role:             req.Role,
		Password:         req.Password,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "User updated successfully", affected)
}

func (a *API) DeleteUser(c *gin.Context) {
	affected, err := a.Users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", affected)
}
