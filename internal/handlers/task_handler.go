package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskboard-hq/taskboard-backend/internal/authctx"
	"github.com/taskboard-hq/taskboard-backend/internal/dto"
	"github.com/taskboard-hq/taskboard-backend/internal/services"
)

type TaskHandler struct {
	taskService TaskService
}

func NewTaskHandler(taskService TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	caller, err := authctx.CurrentCaller(c)
	if err != nil {
		return unauthorized(c)
	}

	tasks, err := h.taskService.List(caller)
	if err != nil {
		return internalError(c, "list tasks failed", err)
	}

	return c.JSON(tasks)
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	caller, err := authctx.CurrentCaller(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	task, err := h.taskService.Create(caller, &req)
	if err != nil {
		if isValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "create task failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TaskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	caller, err := authctx.CurrentCaller(c)
	if err != nil {
		return unauthorized(c)
	}

	// A malformed id is indistinguishable from a missing task on purpose.
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFoundOrDenied(c)
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	task, err := h.taskService.Update(caller, taskID, &req)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return notFoundOrDenied(c)
		}
		if isValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "update task failed", err)
	}

	return c.JSON(dto.TaskResponse{
		Message: "Task updated successfully",
		Task:    task,
	})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	caller, err := authctx.CurrentCaller(c)
	if err != nil {
		return unauthorized(c)
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFoundOrDenied(c)
	}

	if err := h.taskService.Delete(caller, taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return notFoundOrDenied(c)
		}
		return internalError(c, "delete task failed", err)
	}

	return c.JSON(dto.MessageResponse{Message: "Task deleted successfully"})
}

func (h *TaskHandler) ListUsers(c *fiber.Ctx) error {
	caller, err := authctx.CurrentCaller(c)
	if err != nil {
		return unauthorized(c)
	}

	users, err := h.taskService.ListUsers(caller)
	if err != nil {
		if errors.Is(err, services.ErrAdminOnly) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Access denied. Admin only.",
			})
		}
		return internalError(c, "list users failed", err)
	}

	return c.JSON(users)
}

func isValidationErr(err error) bool {
	return errors.Is(err, services.ErrTitleRequired) ||
		errors.Is(err, services.ErrFieldEmpty) ||
		errors.Is(err, services.ErrInvalidStatus) ||
		errors.Is(err, services.ErrInvalidPriority) ||
		errors.Is(err, services.ErrInvalidDueDate) ||
		errors.Is(err, services.ErrAssignedUserNotFound)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func notFoundOrDenied(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "Task not found or access denied",
	})
}

func internalError(c *fiber.Ctx, action string, err error) error {
	slog.Error(action, "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
