package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	orderdomain "github.com/smallbiznis/orderdesk/internal/order/domain"
	"github.com/smallbiznis/orderdesk/internal/providers/pdf"
)

func (s *Server) QuoteOrder(c *gin.Context) {
	var req orderdomain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordOrderQuoted()

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SubmitOrder(c *gin.Context) {
	var req orderdomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	limit, err := s.submitLimiter.Allow(c.Request.Context(), req.DistributorID)
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	if !limit.Allowed {
		c.Header("Retry-After", fmt.Sprintf("%.0f", limit.RetryAfter.Seconds()))
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	resp, err := s.orderSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if !resp.Submitted {
		s.obsMetrics.RecordOrderBlocked(blockReason(resp))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"data": resp})
		return
	}

	s.obsMetrics.RecordOrderSubmitted()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListRequest{
		DistributorID: strings.TrimSpace(c.Query("distributor_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	id, err := parseOrderID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderPDF(c *gin.Context) {
	id, err := parseOrderID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	distributorName := ""
	if d, err := s.distributorSvc.Get(c.Request.Context(), view.Order.DistributorID.String()); err == nil {
		distributorName = d.Name
	}

	lines := make([]pdf.OrderSummaryLine, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, pdf.OrderSummaryLine{
			Description: line.ProductName,
			Qty:         line.Quantity,
			UnitPrice:   formatMoney(line.UnitPrice),
			Amount:      formatMoney(line.LineTotal),
		})
	}

	doc, err := s.pdfProvider.GenerateOrderSummary(c.Request.Context(), pdf.OrderSummaryData{
		OrderNumber:     view.Order.ID.String(),
		OrderDate:       view.Order.CreatedAt.Format("2006-01-02"),
		Status:          string(view.Order.Status),
		PaymentMethod:   view.Order.PaymentMethod,
		TaxChannel:      view.Order.TaxChannel,
		DistributorName: distributorName,
		Jurisdiction:    view.Order.DeliveryJurisdiction,
		Lines:           lines,
		Subtotal:        formatMoney(view.Order.Subtotal),
		DiscountAmount:  formatMoney(view.Order.DiscountAmount),
		TaxAmount:       formatMoney(view.Order.TaxAmount),
		NetAmount:       formatMoney(view.Order.NetAmount),
	})
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=order-%s.pdf", view.Order.ID.String()))
	c.Header("Content-Type", "application/pdf")
	if _, err := io.Copy(c.Writer, doc); err != nil {
		_ = c.Error(err)
	}
}

func parseOrderID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, orderdomain.ErrInvalidOrderID
	}
	return id, nil
}

func blockReason(resp *orderdomain.SubmitResponse) string {
	if len(resp.Quote.Validation.Blocking) > 0 {
		return string(resp.Quote.Validation.Blocking[0].Kind)
	}
	if len(resp.Quote.Validation.StockShortages) > 0 {
		return "stock_quantity"
	}
	return "unknown"
}

// formatMoney renders a minor-unit amount as a decimal string.
func formatMoney(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
