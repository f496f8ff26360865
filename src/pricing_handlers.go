package main

import (
	"errors"
	"log"
	"net/http"
	"stays/src/types"
	"stays/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func pricingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/pricing/quote", func(ctx *gin.Context) {
			var body types.QuoteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			propertyId, err := uuid.Parse(body.PropertyID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			quote, err := utils.ComputeQuote(propertyId, body.CheckIn, body.CheckOut, body.Guests)
			if err != nil {
				log.Printf("Error computing quote for property [%s]: %s\n", body.PropertyID, err.Error())
				if errors.Is(err, utils.ErrPropertyNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": quote})
		})
	return g
}
