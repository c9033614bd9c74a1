package handler

import (
	"Userdir/internal/model"
	"Userdir/internal/service"
	"Userdir/internal/validation"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	GetAllUsers(c *gin.Context)
	GetUser(c *gin.Context)
	CreateUser(c *gin.Context)
	UpdateUser(c *gin.Context)
}

type userHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) UserHandler {
	return &userHandler{
		service: service,
	}
}

// userRequest keeps isActive untyped so a JSON string or number reaches the
// validator instead of failing the decode.
type userRequest struct {
	Username  string      `json:"username"`
	FirstName string      `json:"firstName"`
	Email     string      `json:"email"`
	IsActive  interface{} `json:"isActive"`
}

func (h *userHandler) GetAllUsers(c *gin.Context) {
	users, err := h.service.GetAllUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}

func (h *userHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

func (h *userHandler) CreateUser(c *gin.Context) {
	in, ok := bindUser(c)
	if !ok {
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": user,
	})
}

func (h *userHandler) UpdateUser(c *gin.Context) {
	in, ok := bindUser(c)
	if !ok {
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("username"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

func bindUser(c *gin.Context) (service.UserInput, bool) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"kind":  model.KindInvalidInput.String(),
		})
		return service.UserInput{}, false
	}

	// Full validation runs in the store. A non-boolean isActive cannot reach
	// it, so validate the raw request here to report the first rule violated.
	isActive, err := validation.ActiveStatus(req.IsActive)
	if err != nil {
		writeError(c, validation.ValidateUser(req.Username, req.FirstName, req.Email, req.IsActive))
		return service.UserInput{}, false
	}

	return service.UserInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		Email:     req.Email,
		IsActive:  isActive,
	}, true
}

// writeError maps each error kind to its own status code.
func writeError(c *gin.Context, err error) {
	var ue *model.UserError
	if !errors.As(err, &ue) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	body := gin.H{
		"error": ue.Message,
		"kind":  ue.Kind.String(),
	}

	code := http.StatusInternalServerError
	switch {
	case ue.Kind == model.KindInvalidInput:
		code = http.StatusBadRequest
	case ue.Kind == model.KindDuplicate:
		code = http.StatusConflict
		body["field"] = ue.Field
	case errors.Is(err, model.ErrUserNotFound):
		code = http.StatusNotFound
	}

	c.JSON(code, body)
}
