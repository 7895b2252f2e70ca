package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	promotiondomain "github.com/smallbiznis/orderdesk/internal/promotion/domain"
)

type allocateRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

func (s *Server) CreatePromotionSlab(c *gin.Context) {
	var req promotiondomain.CreateSlabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.promotionSvc.CreateSlab(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPromotionSlabs(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("product_id"))
	if productID == "" {
		AbortWithError(c, newValidationError("product_id", "invalid_product", "product_id is required"))
		return
	}

	resp, err := s.promotionSvc.ListSlabs(c.Request.Context(), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AllocatePromotion(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.promotionSvc.Allocate(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordAllocationRun()

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
