package controllers

import (
	"fmt"
	"net/http"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// POST /food/photo  { "image_base64": "data:…" }
// Stores the meal photo, detects labels and runs the catalog search on the
// top label, so the client can log straight from a picture.
func UploadFoodPhoto(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	photoURL, err := utils.UploadMealPhoto(req.ImageBase64, fmt.Sprintf("user-%d", uid))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rek, err := services.NewRekognitionService()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	labels, err := rek.RecognizeLabels(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(labels) == 0 {
		c.JSON(http.StatusOK, gin.H{"photo_url": photoURL, "results": []any{}})
		return
	}

	usda := services.NewUsdaService()
	results, err := usda.SearchFoods(c.Request.Context(), labels[0])
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": photoURL, "label": labels[0], "results": results})
}
