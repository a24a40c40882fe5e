// Package response defines the JSON envelopes every handler in the back
// office emits: a success envelope with optional payload and the flat
// error envelope used by failure responders.
package response

import "github.com/gofiber/fiber/v2"

// Success is the envelope for 2xx responses.
type Success struct {
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// Error is the envelope for failures: {status, message}, serialized once
// and flushed. No partial bodies, no retries.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// OK writes a 200 envelope with a payload.
func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Success{
		Status:  fiber.StatusOK,
		Data:    data,
		Message: "SUCCESS",
	})
}

// Message writes a 200 envelope carrying only a human message.
func Message(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(Success{
		Status:  fiber.StatusOK,
		Message: message,
	})
}

// Created writes a 201 envelope with a payload.
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Success{
		Status:  fiber.StatusCreated,
		Data:    data,
		Message: "SUCCESS",
	})
}

// Fail writes the error envelope. The envelope status mirrors the
// transport status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Error{
		Status:  status,
		Message: message,
	})
}
