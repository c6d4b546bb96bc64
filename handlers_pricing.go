package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/lfkitchen/costing_backend/models"
)

func listPricingSchemesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		schemes, err := models.ListPricingSchemes(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, schemes)
	}
}

func getPricingSchemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, err := models.GetPricingScheme(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, scheme)
	}
}

func createPricingSchemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPricingScheme
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		scheme, err := models.CreatePricingScheme(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, scheme)
	}
}

func updatePricingSchemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPricingScheme
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		scheme, err := models.UpdatePricingScheme(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, scheme)
	}
}

func deletePricingSchemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeletePricingScheme(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type savePricingDefaultsRequest struct {
	Defaults []models.PricingDefault `json:"defaults" binding:"required"`
}

func savePricingDefaultsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req savePricingDefaultsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, err)
			return
		}
		if err := models.SavePricingDefaults(c.Request.Context(), req.Defaults); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": len(req.Defaults)})
	}
}

func listCostRateSchemesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		schemes, err := models.ListCostRateSchemes(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, schemes)
	}
}

func getCostRateSchemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, err := models.GetCostRateScheme(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, scheme)
	}
}

func createCostRateSchemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCostRateScheme
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		scheme, err := models.CreateCostRateScheme(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, scheme)
	}
}

func updateCostRateSchemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCostRateScheme
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, err)
			return
		}
		scheme, err := models.UpdateCostRateScheme(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, scheme)
	}
}

func deleteCostRateSchemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteCostRateScheme(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
