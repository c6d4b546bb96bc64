package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"bitbucket.org/lfkitchen/costing_backend/config"
	"bitbucket.org/lfkitchen/costing_backend/models"
	"bitbucket.org/lfkitchen/costing_backend/utils"
)

// respondError translates model errors into JSON responses.
func respondError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.As(err, &validationErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		info, err := models.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			logger := config.GetLogger()
			config.LogError(logger, "User", "Login", "login failed", req.Email, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func listBomTablesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		boms, err := models.ListBomTables(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, boms)
	}
}

func getBomTableHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		bom, err := models.GetBomTable(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bom)
	}
}

func createBomTableHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewBomTable
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		bom, err := models.CreateBomTable(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, bom)
	}
}

func updateBomTableHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewBomTable
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		bom, err := models.UpdateBomTable(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bom)
	}
}

func deleteBomTableHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteBomTable(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// bomTableCostHandler resolves shared-material references and returns the
// derived total cost, rounded for display.
func bomTableCostHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		bom, err := models.GetBomTable(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := bom.ResolveItems(ctx, models.LookupMaterial); err != nil {
			respondError(c, err)
			return
		}
		categoryName, err := models.ResolveCategoryName(ctx, bom.Category)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":            bom.ID,
			"table_name":    bom.TableName,
			"category_name": categoryName,
			"items":         bom.Items,
			"total_cost":    bom.ComputeCost().Round(2),
		})
	}
}

func listSharedMaterialsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		materials, err := models.ListSharedMaterials(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, materials)
	}
}

func getSharedMaterialHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		material, err := models.GetSharedMaterial(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, material)
	}
}

func createSharedMaterialHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSharedMaterial
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		material, err := models.CreateSharedMaterial(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, material)
	}
}

func updateSharedMaterialHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSharedMaterial
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		material, err := models.UpdateSharedMaterial(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, material)
	}
}

func deleteSharedMaterialHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteSharedMaterial(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func sharedMaterialHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := models.ListSharedMaterialHistory(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

func listCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := models.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func createCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCategory
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		category, err := models.CreateCategory(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func deleteCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listCustomCombinationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		catalog, err := models.LoadCatalog(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, catalog.Combinations)
	}
}

func getCustomCombinationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		combo, err := models.GetCustomCombination(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		catalog, err := models.LoadCatalog(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		bomById := make(map[string]*models.BomTable, len(catalog.Boms))
		for _, bom := range catalog.Boms {
			bomById[bom.ID] = bom
		}
		c.JSON(http.StatusOK, models.ResolveCombination(combo, bomById))
	}
}

func createCustomCombinationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCustomCombination
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		combo, err := models.CreateCustomCombination(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, combo)
	}
}

func updateCustomCombinationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCustomCombination
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		combo, err := models.UpdateCustomCombination(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, combo)
	}
}

func deleteCustomCombinationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteCustomCombination(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
