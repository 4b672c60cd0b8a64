package ticketControllers

import (
	"log"
	"strings"

	"crm/database"
	"crm/middleware"
	"crm/models"
	ticketValidators "crm/validators/ticket"

	"github.com/gofiber/fiber/v2"
)

func CreateTicket(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("ticketCreateRequest").(*ticketValidators.CreateTicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticket, fieldErrors := ticketValidators.PrepareCreate(*reqData, userId)
	if fieldErrors != nil {
		return middleware.ValidationErrorResponse(c, fieldErrors)
	}

	if err := database.Database.Db.Create(ticket).Error; err != nil {
		log.Printf("Error creating ticket: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Ticket created successfully.", ticket)
}

// UpdateTicket handles PUT requests with full-replace semantics.
func UpdateTicket(c *fiber.Ctx) error {
	return updateTicket(c, false)
}

// PartialUpdateTicket handles PATCH requests; only supplied fields are
// validated and changed.
func PartialUpdateTicket(c *fiber.Ctx) error {
	return updateTicket(c, true)
}

func updateTicket(c *fiber.Ctx, partial bool) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("ticketUpdateRequest").(*ticketValidators.UpdateTicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticketId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	var existing models.Ticket
	if err := database.Database.Db.First(&existing, ticketId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	updated, fieldErrors := ticketValidators.PrepareUpdate(existing, *reqData, partial)
	if fieldErrors != nil {
		return middleware.ValidationErrorResponse(c, fieldErrors)
	}

	if err := database.Database.Db.Save(updated).Error; err != nil {
		log.Printf("Error updating ticket %d: %v", ticketId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket updated successfully.", updated)
}

func TicketList(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("ticketListRequest").(*struct {
		Page     *int    `query:"page"`
		Limit    *int    `query:"limit"`
		Status   *string `query:"status"`
		Priority *string `query:"priority"`
		Owner    *uint   `query:"owner"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Pagination setup
	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Ticket{})

	// Status and priority filters match case-insensitively; stored values
	// are lowercase after normalization.
	if reqData.Status != nil {
		db = db.Where("status = ?", strings.ToLower(*reqData.Status))
	}
	if reqData.Priority != nil {
		db = db.Where("priority = ?", strings.ToLower(*reqData.Priority))
	}
	if reqData.Owner != nil {
		db = db.Where("owner_id = ?", *reqData.Owner)
	}

	var total int64
	db.Count(&total)

	var tickets []models.Ticket
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
		log.Printf("Error fetching tickets: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully.", fiber.Map{
		"tickets": tickets,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
