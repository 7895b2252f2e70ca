package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	distributordomain "github.com/smallbiznis/orderdesk/internal/distributor/domain"
)

func (s *Server) CreateDistributor(c *gin.Context) {
	var req distributordomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.distributorSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDistributors(c *gin.Context) {
	resp, err := s.distributorSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDistributorByID(c *gin.Context) {
	resp, err := s.distributorSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDistributorCredit(c *gin.Context) {
	resp, err := s.distributorSvc.CreditPosition(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
