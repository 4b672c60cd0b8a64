package ticketControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm/config"
	"crm/database"
	"crm/middleware"
	"crm/models"
	ticketRoutes "crm/routers/ticketRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *models.User, string) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "0",
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.VerificationCode{}, &models.Ticket{}))
	database.Database = database.DbInstance{Db: db}

	user := &models.User{
		Username: "agent@example.com",
		Email:    "agent@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	require.NoError(t, err)

	app := fiber.New()
	ticketRoutes.SetupTicketRoutes(app)
	return app, user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestCreateTicketRequiresToken(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/tickets/create", fiber.Map{
		"name":        "Printer broken",
		"description": "desc",
		"source":      "email",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateTicketNormalizesAndDefaults(t *testing.T) {
	app, user, token := setupApp(t)

	resp, parsed := doJSON(t, app, fiber.MethodPost, "/tickets/create", fiber.Map{
		"name":         "Printer broken",
		"description":  "desc",
		"source":       "Email",
		"phone_number": "+1234567890",
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var ticket models.Ticket
	require.NoError(t, json.Unmarshal(parsed.Data, &ticket))
	assert.Equal(t, "email", ticket.Source)
	assert.Equal(t, models.DefaultTicketStatus, ticket.Status)
	assert.Equal(t, models.DefaultTicketPriority, ticket.Priority)
	require.NotNil(t, ticket.OwnerID)
	assert.Equal(t, user.ID, *ticket.OwnerID)
}

func TestCreateTicketValidationErrors(t *testing.T) {
	app, _, token := setupApp(t)

	resp, parsed := doJSON(t, app, fiber.MethodPost, "/tickets/create", fiber.Map{
		"name":     "AB",
		"priority": "medium",
	}, token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(parsed.Data, &errs))
	assert.NotEmpty(t, errs["name"])
	assert.NotEmpty(t, errs["description"])
	assert.NotEmpty(t, errs["source"])
}

func createTicket(t *testing.T, app *fiber.App, token string) models.Ticket {
	t.Helper()

	resp, parsed := doJSON(t, app, fiber.MethodPost, "/tickets/create", fiber.Map{
		"name":        "Printer broken",
		"description": "desc",
		"source":      "email",
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var ticket models.Ticket
	require.NoError(t, json.Unmarshal(parsed.Data, &ticket))
	return ticket
}

func TestPartialUpdateChangesOnlySuppliedFields(t *testing.T) {
	app, _, token := setupApp(t)
	ticket := createTicket(t, app, token)

	resp, parsed := doJSON(t, app, fiber.MethodPatch, fmt.Sprintf("/tickets/%d", ticket.ID), fiber.Map{
		"status": "RESOLVED",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Ticket
	require.NoError(t, json.Unmarshal(parsed.Data, &updated))
	assert.Equal(t, "resolved", updated.Status)
	assert.Equal(t, ticket.Name, updated.Name)
	assert.Equal(t, ticket.Source, updated.Source)
	assert.Equal(t, ticket.Priority, updated.Priority)
}

func TestFullUpdateRequiresAllFields(t *testing.T) {
	app, _, token := setupApp(t)
	ticket := createTicket(t, app, token)

	resp, parsed := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/tickets/%d", ticket.ID), fiber.Map{
		"status": "closed",
	}, token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(parsed.Data, &errs))
	assert.NotEmpty(t, errs["name"])
	assert.NotEmpty(t, errs["description"])
	assert.NotEmpty(t, errs["source"])
}

func TestUpdateUnknownTicket(t *testing.T) {
	app, _, token := setupApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPatch, "/tickets/9999", fiber.Map{
		"status": "closed",
	}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTicketListFilters(t *testing.T) {
	app, user, token := setupApp(t)
	createTicket(t, app, token)

	other := models.Ticket{
		Name:        "Server down",
		Description: "rack 3",
		Status:      "resolved",
		Source:      "phone",
		Priority:    "high",
		OwnerID:     &user.ID,
	}
	require.NoError(t, database.Database.Db.Create(&other).Error)

	// Filters are case-insensitive against the lowercase stored values.
	resp, parsed := doJSON(t, app, fiber.MethodGet, "/tickets/list?status=OPEN", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Tickets    []models.Ticket `json:"tickets"`
		Pagination struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &data))
	require.Len(t, data.Tickets, 1)
	assert.Equal(t, "open", data.Tickets[0].Status)
	assert.Equal(t, 1, data.Pagination.Total)

	resp, parsed = doJSON(t, app, fiber.MethodGet, "/tickets/list?priority=high", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(parsed.Data, &data))
	require.Len(t, data.Tickets, 1)
	assert.Equal(t, "Server down", data.Tickets[0].Name)

	resp, parsed = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/tickets/list?owner=%d", user.ID), nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(parsed.Data, &data))
	assert.Len(t, data.Tickets, 2)
}

func TestTicketListPagination(t *testing.T) {
	app, _, token := setupApp(t)

	for i := 0; i < 3; i++ {
		createTicket(t, app, token)
	}

	resp, parsed := doJSON(t, app, fiber.MethodGet, "/tickets/list?page=1&limit=2", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Tickets    []models.Ticket `json:"tickets"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &data))
	assert.Len(t, data.Tickets, 2)
	assert.Equal(t, 3, data.Pagination.Total)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/tickets/list?page=0", nil, token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
