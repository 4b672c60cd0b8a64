package ticketRoutes

import (
	ticketControllers "crm/controllers/ticket"
	"crm/middleware"
	ticketValidators "crm/validators/ticket"

	"github.com/gofiber/fiber/v2"
)

func SetupTicketRoutes(app *fiber.App) {
	ticketGroup := app.Group("/tickets")

	ticketGroup.Post("/create", ticketValidators.CreateTicket(), middleware.JWTMiddleware, ticketControllers.CreateTicket)
	ticketGroup.Get("/list", ticketValidators.TicketList(), middleware.JWTMiddleware, ticketControllers.TicketList)
	ticketGroup.Put("/:id", ticketValidators.UpdateTicket(), middleware.JWTMiddleware, ticketControllers.UpdateTicket)
	ticketGroup.Patch("/:id", ticketValidators.UpdateTicket(), middleware.JWTMiddleware, ticketControllers.PartialUpdateTicket)
}
