package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/services"
	"github.com/dchirkov/eventum/utils"
)

const categoryCachePrefix = "eventum:categories:"

// CategoryController exposes the category dictionary on the admin and public
// surfaces. Public reads go through the redis cache; admin mutations drop it.
type CategoryController struct {
	categories *services.CategoryService
}

// NewCategoryController creates a CategoryController.
func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// Create handles POST /admin/categories.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.NewCategoryDto
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	cat, err := c.categories.CreateCategory(req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(categoryCachePrefix)
	ctx.JSON(http.StatusCreated, cat)
}

// Update handles PATCH /admin/categories/:catId.
func (c *CategoryController) Update(ctx *gin.Context) {
	catID, err := pathID(ctx, "catId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	var req dto.NewCategoryDto
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	cat, err := c.categories.UpdateCategory(catID, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(categoryCachePrefix)
	ctx.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /admin/categories/:catId.
func (c *CategoryController) Delete(ctx *gin.Context) {
	catID, err := pathID(ctx, "catId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	if err := c.categories.DeleteCategory(catID); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(categoryCachePrefix)
	ctx.Status(http.StatusNoContent)
}

// List handles GET /categories.
func (c *CategoryController) List(ctx *gin.Context) {
	from, size, err := pageParams(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	key := fmt.Sprintf("%slist:%d:%d", categoryCachePrefix, from, size)
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	cats, err := c.categories.GetCategories(from, size)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.CacheSetJSON(key, cats, 10*time.Minute)
	ctx.JSON(http.StatusOK, cats)
}

// Get handles GET /categories/:catId.
func (c *CategoryController) Get(ctx *gin.Context) {
	catID, err := pathID(ctx, "catId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	key := fmt.Sprintf("%sone:%d", categoryCachePrefix, catID)
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	cat, err := c.categories.GetCategory(catID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.CacheSetJSON(key, cat, 10*time.Minute)
	ctx.JSON(http.StatusOK, cat)
}
