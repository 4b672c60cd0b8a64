package ticketValidators

import (
	"reflect"
	"strings"

	"crm/middleware"
	"crm/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FieldErrors maps a field name to the list of messages for it.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the json field name, not the struct field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ticketFields carries the structural rules shared by the create and
// update pipelines.
type ticketFields struct {
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description" validate:"required"`
	Source      string `json:"source" validate:"required"`
}

func validateFields(fields ticketFields) FieldErrors {
	err := validate.Struct(fields)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"non_field_errors": {err.Error()}}
	}

	errs := FieldErrors{}
	for _, fe := range verrs {
		errs.Add(fe.Field(), fieldMessage(fe))
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	default:
		return "This field is invalid."
	}
}

// CreateTicketRequest is the raw inbound field mapping for ticket creation.
type CreateTicketRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Source      string `json:"source"`
	Priority    string `json:"priority"`
	OwnerID     *uint  `json:"owner"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateTicketRequest is the raw inbound field mapping for ticket updates.
// Pointers distinguish "absent" from "blank".
type UpdateTicketRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Source      *string `json:"source"`
	Priority    *string `json:"priority"`
	OwnerID     *uint   `json:"owner"`
	PhoneNumber *string `json:"phone_number"`
}

// PrepareCreate normalizes the raw fields into a ticket ready for
// persistence, or returns the per-field validation errors. The request is
// not mutated; source is lower-cased, status and priority fall back to the
// model defaults, and the owner falls back to the requester.
func PrepareCreate(req CreateTicketRequest, requesterID uint) (*models.Ticket, FieldErrors) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	source := strings.ToLower(strings.TrimSpace(req.Source))

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = models.DefaultTicketStatus
	}
	priority := strings.ToLower(strings.TrimSpace(req.Priority))
	if priority == "" {
		priority = models.DefaultTicketPriority
	}

	owner := req.OwnerID
	if owner == nil {
		requester := requesterID
		owner = &requester
	}

	if errs := validateFields(ticketFields{
		Name:        name,
		Description: description,
		Source:      source,
	}); len(errs) > 0 {
		return nil, errs
	}

	return &models.Ticket{
		Name:        name,
		Description: description,
		Status:      status,
		Source:      source,
		Priority:    priority,
		OwnerID:     owner,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	}, nil
}

// PrepareUpdate merges the patch onto a copy of the existing ticket and
// validates the result. With partial=true only supplied fields are
// validated and unsupplied fields retain their prior value; with
// partial=false the patch must carry every required field (full replace).
func PrepareUpdate(existing models.Ticket, req UpdateTicketRequest, partial bool) (*models.Ticket, FieldErrors) {
	errs := FieldErrors{}

	if !partial {
		if req.Name == nil {
			errs.Add("name", "This field is required.")
		}
		if req.Description == nil {
			errs.Add("description", "This field is required.")
		}
		if req.Source == nil {
			errs.Add("source", "This field is required.")
		}
	}

	supplied := map[string]bool{
		"name":        req.Name != nil,
		"description": req.Description != nil,
		"source":      req.Source != nil,
	}

	merged := existing
	if req.Name != nil {
		merged.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		merged.Description = strings.TrimSpace(*req.Description)
	}
	if req.Source != nil {
		merged.Source = strings.ToLower(strings.TrimSpace(*req.Source))
	}
	if req.Status != nil {
		merged.Status = strings.ToLower(strings.TrimSpace(*req.Status))
	}
	if req.Priority != nil {
		merged.Priority = strings.ToLower(strings.TrimSpace(*req.Priority))
	}
	if req.OwnerID != nil {
		merged.OwnerID = req.OwnerID
	}
	if req.PhoneNumber != nil {
		merged.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}

	for field, messages := range validateFields(ticketFields{
		Name:        merged.Name,
		Description: merged.Description,
		Source:      merged.Source,
	}) {
		if partial && !supplied[field] {
			continue
		}
		errs[field] = append(errs[field], messages...)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &merged, nil
}

// CreateTicket parses the create request body and stashes it for the
// controller, which applies normalization once the requester is known.
func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTicketRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("ticketCreateRequest", reqData)
		return c.Next()
	}
}

// UpdateTicket parses the update request body.
func UpdateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateTicketRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if _, err := c.ParamsInt("id"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
		}

		c.Locals("ticketUpdateRequest", reqData)
		return c.Next()
	}
}

// TicketList validates the list query parameters.
func TicketList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int    `query:"page"`
			Limit    *int    `query:"limit"`
			Status   *string `query:"status"`
			Priority *string `query:"priority"`
			Owner    *uint   `query:"owner"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := FieldErrors{}

		if reqData.Page != nil && *reqData.Page < 1 {
			errors.Add("page", "Page must be greater than 0!")
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors.Add("limit", "Limit must be greater than 0!")
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("ticketListRequest", reqData)
		return c.Next()
	}
}
