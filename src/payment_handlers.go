package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"stays/src/lib"
	"stays/src/types"
	"stays/src/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/payment-methods", func(ctx *gin.Context) {
			var body types.AddPaymentMethodRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			method, err := utils.AddPaymentMethod(userId, &body)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": utils.MapPaymentMethod(method)})
		}).
		GET("/payment-methods", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			methods, err := utils.GetUserPaymentMethods(userId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			data := make([]*types.APIResponsePaymentMethod, 0, len(methods))
			for i := range methods {
				data = append(data, utils.MapPaymentMethod(&methods[i]))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		DELETE("/payment-methods/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			methodId, _ := uuid.Parse(params.ID)
			deleted, err := utils.DeletePaymentMethod(userId, methodId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if !deleted {
				ctx.JSON(http.StatusNotFound, gin.H{"deleted": false})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"deleted": true})
		}).
		POST("/payment-methods/validate", func(ctx *gin.Context) {
			var body types.PaymentData
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"valid": utils.ValidatePaymentData(&body)})
		}).
		POST("/payments/checkout", func(ctx *gin.Context) {
			var body types.CheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			propertyId, err := uuid.Parse(body.PropertyID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			quote, err := utils.ComputeQuote(propertyId, body.CheckIn, body.CheckOut, body.Guests)
			if err != nil {
				log.Printf("error on checkout: %s\n", err.Error())
				if errors.Is(err, utils.ErrPropertyNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			requestID := uuid.New()
			processor := lib.GetPaymentProcessor()
			txn, err := processor.Process(userId, &body)
			if err != nil {
				log.Printf("Error processing payment: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil {
				if _, err := rd.SetEx(context.Background(), requestID.String(), txn.ReferenceID, 10*time.Minute).Result(); err != nil {
					log.Printf("Error caching value [%s]: %s\n", txn.ReferenceID, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn, "quote": quote, "request_id": requestID.String()})
		}).
		GET("/transactions", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			txns, err := utils.GetUserTransactions(userId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txns, "count": len(txns)})
		}).
		GET("/transactions/stats", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			stats, err := utils.GetTransactionStats(userId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": stats})
		}).
		GET("/transactions/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			txnId, _ := uuid.Parse(params.ID)
			txn, err := utils.GetTransactionByID(txnId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if txn == nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
				return
			}
			if txn.UserID != ctx.GetUint("id") && ctx.GetString("role") != types.ROLE_ADMIN {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		PUT("/transactions/:id/status", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateTransactionStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			txnId, _ := uuid.Parse(params.ID)
			existing, err := utils.GetTransactionByID(txnId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if existing == nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
				return
			}
			if existing.UserID != ctx.GetUint("id") && ctx.GetString("role") != types.ROLE_ADMIN {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
				return
			}
			txn, err := utils.UpdateTransactionStatus(txnId, body.Status)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if txn == nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		})
	return g
}
