package handlers

import (
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/models"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles the category endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

func toCategoryResponse(cat *models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		Type:      cat.Type,
		IsGlobal:  cat.IsGlobal(),
		CreatedAt: cat.CreatedAt,
	}
}

// List returns the categories visible to the authenticated user: the global
// set plus their own, ordered by type then name
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categoryService.ListVisible(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, toCategoryResponse(&categories[i]))
	}

	return c.JSON(http.StatusOK, responses)
}

// Create adds a user-owned category. The response keeps the contract of the
// in-form category widget: HTTP 200 with a success flag, and a message
// instead of an error payload when the submission is rejected.
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category fields"
// @Success 200 {object} dto.CreateCategoryResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, dto.CreateCategoryResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	category, err := h.categoryService.Create(userID, &req)
	if err != nil {
		switch err {
		case services.ErrCategoryNameRequired:
			return c.JSON(http.StatusOK, dto.CreateCategoryResponse{
				Success: false,
				Message: "Category name is required.",
			})
		case services.ErrCategoryNameTooLong:
			return c.JSON(http.StatusOK, dto.CreateCategoryResponse{
				Success: false,
				Message: "Category name is too long.",
			})
		case services.ErrCategoryTypeInvalid:
			return c.JSON(http.StatusOK, dto.CreateCategoryResponse{
				Success: false,
				Message: "Invalid category type.",
			})
		case services.ErrCategoryExists:
			return c.JSON(http.StatusOK, dto.CreateCategoryResponse{
				Success: false,
				Message: "Category already exists.",
			})
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CreateCategoryResponse{
		Success:    true,
		CategoryID: &category.ID,
	})
}
