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

const compilationCachePrefix = "eventum:compilations:"

// CompilationController exposes compilations on the admin and public
// surfaces. Public reads are cached; admin mutations drop the cache.
type CompilationController struct {
	compilations *services.CompilationService
}

// NewCompilationController creates a CompilationController.
func NewCompilationController(compilations *services.CompilationService) *CompilationController {
	return &CompilationController{compilations: compilations}
}

// Create handles POST /admin/compilations.
func (c *CompilationController) Create(ctx *gin.Context) {
	var req dto.NewCompilationDto
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	comp, err := c.compilations.CreateCompilation(req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(compilationCachePrefix)
	ctx.JSON(http.StatusCreated, comp)
}

// Update handles PATCH /admin/compilations/:compId.
func (c *CompilationController) Update(ctx *gin.Context) {
	compID, err := pathID(ctx, "compId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	var req dto.UpdateCompilationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	comp, err := c.compilations.UpdateCompilation(compID, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(compilationCachePrefix)
	ctx.JSON(http.StatusOK, comp)
}

// Delete handles DELETE /admin/compilations/:compId.
func (c *CompilationController) Delete(ctx *gin.Context) {
	compID, err := pathID(ctx, "compId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	if err := c.compilations.DeleteCompilation(compID); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(compilationCachePrefix)
	ctx.Status(http.StatusNoContent)
}

// List handles GET /compilations.
func (c *CompilationController) List(ctx *gin.Context) {
	pinned, err := queryBool(ctx, "pinned")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	from, size, err := pageParams(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	key := fmt.Sprintf("%slist:%v:%d:%d", compilationCachePrefix, ctx.Query("pinned"), from, size)
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	comps, err := c.compilations.GetCompilations(pinned, from, size)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.CacheSetJSON(key, comps, 5*time.Minute)
	ctx.JSON(http.StatusOK, comps)
}

// Get handles GET /compilations/:compId.
func (c *CompilationController) Get(ctx *gin.Context) {
	compID, err := pathID(ctx, "compId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	key := fmt.Sprintf("%sone:%d", compilationCachePrefix, compID)
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	comp, err := c.compilations.GetCompilation(compID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.CacheSetJSON(key, comp, 5*time.Minute)
	ctx.JSON(http.StatusOK, comp)
}
