package main

import (
	"errors"
	"log"
	"net/http"
	"stays/src/config"
	"stays/src/db"
	"stays/src/models"
	"stays/src/types"
	"stays/src/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func propertyHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/properties", func(ctx *gin.Context) {
			var body types.CreatePropertyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			status := types.PROPERTY_DRAFT
			if body.Publish {
				status = types.PROPERTY_LISTED
			}
			property := models.Property{
				HostID:        userId,
				Title:         body.Title,
				Slug:          utils.PropertySlug(body.Title),
				Description:   body.Description,
				Location:      body.Location,
				PricePerNight: body.PricePerNight,
				MaxGuests:     body.MaxGuests,
				Status:        string(status),
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&property).Error
			}); err != nil {
				log.Printf("Error creating Property: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": property})
		}).
		GET("/properties", func(ctx *gin.Context) {
			db := db.GetDb()
			var properties []models.Property
			err := db.
				Model(&models.Property{}).
				Where(&models.Property{Status: string(types.PROPERTY_LISTED)}).
				Limit(100).
				Find(&properties).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
		}).
		GET("/properties/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			propertyId, _ := uuid.Parse(params.ID)
			property, err := utils.GetPropertyByID(propertyId)
			if err != nil {
				if errors.Is(err, utils.ErrPropertyNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": property})
		}).
		GET("/properties/:id/availability", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query types.AvailabilityQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, query.CheckIn)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, query.CheckOut)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			propertyId, _ := uuid.Parse(params.ID)
			available, err := utils.CheckAvailability(db.GetDb(), propertyId, checkIn, checkOut)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"available": available})
		})
	return g
}
