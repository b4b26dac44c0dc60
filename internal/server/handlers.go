package server

import (
	"net/http"
	"strconv"

	"github.com/foodsspot/beeline/internal/mailer"
	"github.com/foodsspot/beeline/internal/messaging"
	"github.com/foodsspot/beeline/internal/models"
	"github.com/gin-gonic/gin"
)

// deliveryRequest is the quote request body. Coordinates are pointers so a
// present-but-zero value is distinguishable from a missing field.
type deliveryRequest struct {
	CustomerLatitude  *float64 `json:"customer_latitude"  binding:"required"`
	CustomerLongitude *float64 `json:"customer_longitude" binding:"required"`
}

// deliveryResponse carries the nearest-branch quote. The numeric values are
// string-encoded: the chat platform consuming this API expects plain
// key-value text fields.
type deliveryResponse struct {
	NearestBranchName            string `json:"nearest_branch_name"`
	NearestBranchTotalKilometers string `json:"nearest_branch_total_kilometers"`
	NearestBranchEstimatedTiming string `json:"nearest_branch_estimated_timing_minutes"`
	NearestBranchTotalAmountPKR  string `json:"nearest_branch_total_amount_pkr"`
}

type whatsappMessageRequest struct {
	CustomerName    string `json:"customer_name"`
	OrderDetails    string `json:"order_details"`
	TotalAmount     string `json:"total_amount"`
	DeliveryAddress string `json:"delivery_address"`
	RecipientPhone  string `json:"recipient_phone"`
}

type orderConfirmationRequest struct {
	CustomerName        string `json:"customer_name"`
	CustomerPhone       string `json:"customer_phone"`
	OrderDetails        string `json:"order_details"`
	TotalAmount         string `json:"total_amount"`
	DeliveryAddress     string `json:"delivery_address"`
	SpecialInstructions string `json:"special_instructions"`
}

func (s *Server) handleHome(c *gin.Context) {
	c.String(http.StatusOK, "The API is running!")
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// handleCalculateDelivery validates the customer coordinates, runs the quote
// calculator against the branch registry, and returns the nearest branch's
// quote.
func (s *Server) handleCalculateDelivery(c *gin.Context) {
	ctx := c.Request.Context()

	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log.ErrorContext(ctx, "Invalid quote request", "error", err)
		s.metrics.QuotesComputed.WithLabelValues("invalid_input").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input. Please provide customer_latitude and customer_longitude.",
		})
		return
	}

	customer := models.Coordinates{
		Latitude:  *req.CustomerLatitude,
		Longitude: *req.CustomerLongitude,
	}
	if err := customer.Validate(); err != nil {
		s.log.ErrorContext(ctx, "Quote request out of range", "error", err)
		s.metrics.QuotesComputed.WithLabelValues("invalid_input").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input. " + err.Error() + "."})
		return
	}

	result := s.calc.Calculate(customer)
	nearest := result.Nearest

	s.metrics.QuotesComputed.WithLabelValues("success").Inc()
	s.metrics.NearestBranch.WithLabelValues(nearest.BranchName).Inc()

	s.log.InfoContext(ctx, "Delivery quote computed",
		"nearest_branch", nearest.BranchName,
		"distance_km", nearest.DistanceKm,
		"estimated_minutes", nearest.EstimatedMinutes,
		"total_amount_pkr", nearest.TotalAmountPKR,
	)

	c.JSON(http.StatusOK, deliveryResponse{
		NearestBranchName:            nearest.BranchName,
		NearestBranchTotalKilometers: strconv.FormatFloat(nearest.DistanceKm, 'f', 2, 64),
		NearestBranchEstimatedTiming: strconv.Itoa(nearest.EstimatedMinutes),
		NearestBranchTotalAmountPKR:  strconv.Itoa(nearest.TotalAmountPKR),
	})
}

// handleSendWhatsApp dispatches the order-confirmation template message to
// the customer. A delivery failure is reported to the caller but never
// crashes the process.
func (s *Server) handleSendWhatsApp(c *gin.Context) {
	ctx := c.Request.Context()

	var req whatsappMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body."})
		return
	}
	if req.RecipientPhone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "recipient_phone is required."})
		return
	}

	err := s.messenger.Send(ctx, messaging.Message{Recipient: req.RecipientPhone})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to send WhatsApp message",
			"recipient", req.RecipientPhone, "error", err)
		s.metrics.NotificationOps.WithLabelValues("whatsapp", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to send WhatsApp message.",
		})
		return
	}

	s.metrics.NotificationOps.WithLabelValues("whatsapp", "success").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "WhatsApp message sent."})
}

// handleOrderConfirmation renders and sends the order-confirmation email to
// the configured staff addresses.
func (s *Server) handleOrderConfirmation(c *gin.Context) {
	ctx := c.Request.Context()

	var req orderConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body."})
		return
	}

	err := s.mailer.SendOrderConfirmation(ctx, mailer.OrderDetails{
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		OrderItems:          req.OrderDetails,
		TotalAmount:         req.TotalAmount,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to send order confirmation email",
			"customer", req.CustomerName, "error", err)
		s.metrics.NotificationOps.WithLabelValues("email", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to send email notification.",
		})
		return
	}

	s.metrics.NotificationOps.WithLabelValues("email", "success").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Email notification sent."})
}
