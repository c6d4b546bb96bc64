package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/lfkitchen/costing_backend/config"
	"bitbucket.org/lfkitchen/costing_backend/models"
	"bitbucket.org/lfkitchen/costing_backend/shipping"
)

// shippingCalculateHandler takes a multipart xlsx upload, loads a fresh
// catalog snapshot and runs the whole calculation. Every call starts a new
// session, so nothing from a previous run survives.
func shippingCalculateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := config.GetLogger()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order spreadsheet is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()

		rows, err := shipping.ParseOrders(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(rows) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "spreadsheet has no order rows"})
			return
		}

		catalog, err := models.LoadCatalog(ctx)
		if err != nil {
			// partial catalogs would produce wrong costs; surface and stop
			config.LogError(logger, "Shipping", "Calculate", "catalog load failed", nil, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load product catalogs, please retry"})
			return
		}

		session := shipping.Calculate(ctx, catalog, rows)
		c.JSON(http.StatusOK, session)
	}
}
