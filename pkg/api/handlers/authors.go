package handlers

import "github.com/gofiber/fiber/v3"

// GetAuthor handles GET /api/v1/authors/:id
func (s *Server) GetAuthor(c fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	author, err := s.repo.GetAuthor(c.Context(), id)
	if err != nil {
		return mapStoreError(err)
	}

	return s.respond(c, fiber.StatusOK, author)
}
