package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"issuetracker/internal/model"
	"issuetracker/internal/service"
)

// Pinger reports whether the issue store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: decoding, the service call, and response mapping.
func RegisterRoutes(app *fiber.App, store Pinger, issueSvc service.IssueService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	issues := app.Group("/api/issues")
	issues.Post("/:project", CreateIssue(issueSvc))
	issues.Get("/:project", ListIssues(issueSvc))
	issues.Put("/:project", UpdateIssue(issueSvc))
	issues.Delete("/:project", DeleteIssue(issueSvc))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Description Checks connectivity to the issue store.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// CreateIssue godoc
// @Summary Create an issue
// @Description issue_title, issue_text and created_by are required. Validation failures are returned with status 200.
// @Tags issues
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param project path string true "Project name"
// @Param issue body model.Issue true "Issue fields"
// @Success 200 {object} model.Issue
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/issues/{project} [post]
func CreateIssue(issueSvc service.IssueService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fields, err := bodyFields(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		issue, err := issueSvc.Create(c.UserContext(), c.Params("project"), fields)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(issue)
	}
}

// ListIssues godoc
// @Summary List issues
// @Description Every query parameter is an equality filter on an issue field.
// @Tags issues
// @Produce json
// @Param project path string true "Project name"
// @Param open query bool false "Filter by open state"
// @Param assigned_to query string false "Filter by assignee"
// @Success 200 {array} model.Issue
// @Failure 500 {object} errorPayload
// @Router /api/issues/{project} [get]
func ListIssues(issueSvc service.IssueService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := issueSvc.List(c.UserContext(), c.Params("project"), queryFilter(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	}
}

// UpdateIssue godoc
// @Summary Update an issue
// @Description Only the submitted fields change. Domain failures are returned with status 200.
// @Tags issues
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param project path string true "Project name"
// @Param issue body model.Issue true "_id plus the fields to change"
// @Success 200 {object} service.Ack
// @Failure 400 {object} errorPayload
// @Router /api/issues/{project} [put]
func UpdateIssue(issueSvc service.IssueService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fields, err := bodyFields(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		ack, err := issueSvc.Update(c.UserContext(), c.Params("project"), fields)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(ack)
	}
}

// DeleteIssue godoc
// @Summary Delete an issue
// @Description Domain failures are returned with status 200.
// @Tags issues
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param project path string true "Project name"
// @Success 200 {object} service.Ack
// @Failure 400 {object} errorPayload
// @Router /api/issues/{project} [delete]
func DeleteIssue(issueSvc service.IssueService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fields, err := bodyFields(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		ack, err := issueSvc.Delete(c.UserContext(), c.Params("project"), fields[model.FieldID])
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(ack)
	}
}
