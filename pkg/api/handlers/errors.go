package handlers

import "github.com/gofiber/fiber/v3"

// ErrArticleNotFound is returned when an article is not found
var ErrArticleNotFound = fiber.NewError(fiber.StatusNotFound, "article not found")

// ErrAuthorNotFound is returned when an author is not found
var ErrAuthorNotFound = fiber.NewError(fiber.StatusNotFound, "author not found")

// ErrInvalidID is returned when a path identifier is not a UUID
var ErrInvalidID = fiber.NewError(fiber.StatusBadRequest, "invalid ID format, expected UUID")

// ErrInvalidBody is returned when a request body cannot be decoded
var ErrInvalidBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")
