package controllers

import (
	"net/http"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/services"
	"github.com/pehnava/pehnava/pkg/bind"
	"github.com/pehnava/pehnava/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type authPayload struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, authPayload{User: user, Token: token})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := c.service.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, authPayload{User: user, Token: token})
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Profile(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, user)
}

func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		Address    string `json:"address"`
		ProfilePic string `json:"profilePic"`
	}
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := c.service.UpdateProfile(r.Context(), id, in.Name, in.Phone, in.Address, in.ProfilePic)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, user)
}
