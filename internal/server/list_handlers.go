// Package server contains the HTTP handlers for the movie list API.
package server

import (
	"reelist/internal/models"
	"reelist/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /. The feed shows all movies in reverse insertion order,
// every list for navigation, and the logged-in user when a session is present.
func (s *Server) Home(c *fiber.Ctx) error {
	movies, err := s.movieRepo.ListAll(c.Context())
	if err != nil {
		return respondRepoError(c, err)
	}

	lists, err := s.listRepo.ListAll(c.Context())
	if err != nil {
		return respondRepoError(c, err)
	}

	var user *models.User
	if userID, ok := s.optionalUserID(c); ok {
		if u, err := s.userRepo.GetByID(c.Context(), userID); err == nil {
			user = u
		}
	}

	return c.JSON(fiber.Map{
		"movies": movies,
		"lists":  lists,
		"user":   user,
	})
}

// ShowList handles GET /show_list/:listID
func (s *Server) ShowList(c *fiber.Ctx) error {
	listID, err := s.parseID(c, "listID")
	if err != nil {
		return nil
	}

	list, err := s.listRepo.GetByID(c.Context(), listID)
	if err != nil {
		return respondRepoError(c, err)
	}

	movies, err := s.movieRepo.ListByList(c.Context(), listID)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(fiber.Map{
		"list":   list,
		"movies": movies,
	})
}

// ShowAllLists handles GET /list
func (s *Server) ShowAllLists(c *fiber.Ctx) error {
	lists, err := s.listRepo.ListAll(c.Context())
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(fiber.Map{
		"lists": lists,
	})
}

// CreateList handles POST /create_list
func (s *Server) CreateList(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name" form:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	list := &models.List{
		Name:     req.Name,
		AuthorID: s.currentUserID(c),
	}
	if err := s.listRepo.Create(c.Context(), list); err != nil {
		return respondRepoError(c, err)
	}

	return c.Redirect("/list", fiber.StatusFound)
}

// DeleteList handles POST /delete_list?id=. The delete cascades to the
// list's movies; an absent or unknown id is a no-op.
func (s *Server) DeleteList(c *fiber.Ctx) error {
	id, found, err := s.parseQueryID(c)
	if err != nil {
		return nil
	}
	if found {
		if err := s.listRepo.Delete(c.Context(), id); err != nil {
			return respondRepoError(c, err)
		}
	}

	return c.Redirect("/", fiber.StatusFound)
}
