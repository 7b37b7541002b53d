// Package server contains the HTTP handlers for the movie list API.
package server

import (
	"errors"
	"fmt"

	"reelist/internal/catalog"
	"reelist/internal/models"
	"reelist/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// movieCandidate is one search result offered to the user before they pick
// which movie to add.
type movieCandidate struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterURL   string `json:"poster_url,omitempty"`
}

// AddMovie handles POST /add/:listID. It searches the catalog by title and
// returns the candidates for the user to pick from.
func (s *Server) AddMovie(c *fiber.Ctx) error {
	listID, err := s.parseID(c, "listID")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title" form:"title"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	list, err := s.listRepo.GetByID(c.Context(), listID)
	if err != nil {
		return respondRepoError(c, err)
	}

	results, err := s.catalog.Search(c.Context(), req.Title)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewCatalogUnavailableError(err))
	}

	candidates := make([]movieCandidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, movieCandidate{
			ID:          r.ID,
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			Overview:    r.Overview,
			PosterURL:   s.catalog.PosterURL(r.PosterPath),
		})
	}

	return c.JSON(fiber.Map{
		"list":    list,
		"results": candidates,
	})
}

// FindMovie handles POST /find/:listID?id=&category=. It fetches the chosen
// movie's metadata from the catalog, stores it in the list, and redirects to
// the rating form for the new movie.
func (s *Server) FindMovie(c *fiber.Ctx) error {
	listID, err := s.parseID(c, "listID")
	if err != nil {
		return nil
	}

	catalogID := c.QueryInt("id")
	if catalogID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid id"))
	}

	category := c.Query("category")
	if err := validation.ValidateCategory(category); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	list, err := s.listRepo.GetByID(c.Context(), listID)
	if err != nil {
		return respondRepoError(c, err)
	}

	details, err := s.catalog.Details(c.Context(), int64(catalogID))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Movie", catalogID))
		}
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewCatalogUnavailableError(err))
	}

	movie := &models.Movie{
		Title:       details.Title,
		Year:        details.Year(),
		Description: details.Overview,
		ImgURL:      s.catalog.PosterURL(details.PosterPath),
		Category:    category,
		ListID:      list.ID,
		AuthorID:    s.currentUserID(c),
	}
	if err := s.movieRepo.Create(c.Context(), movie); err != nil {
		return respondRepoError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/edit?id=%d", movie.ID), fiber.StatusFound)
}

// GetMovie handles GET /edit?id=. It returns the movie the rating form edits.
func (s *Server) GetMovie(c *fiber.Ctx) error {
	id, found, err := s.parseQueryID(c)
	if err != nil {
		return nil
	}
	if !found {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid id"))
	}

	movie, err := s.movieRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(fiber.Map{
		"movie": movie,
	})
}

// RateMovie handles POST /edit?id=. Re-rating overwrites the previous rating
// and review.
func (s *Server) RateMovie(c *fiber.Ctx) error {
	id, found, err := s.parseQueryID(c)
	if err != nil {
		return nil
	}
	if !found {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid id"))
	}

	var req struct {
		Rating string `json:"rating" form:"rating"`
		Review string `json:"review" form:"review"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateRating(req.Rating); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if err := s.movieRepo.UpdateRating(c.Context(), id, req.Rating, req.Review); err != nil {
		return respondRepoError(c, err)
	}

	return c.Redirect("/", fiber.StatusFound)
}

// DeleteMovie handles POST /delete?id=. An absent or unknown id is a no-op.
func (s *Server) DeleteMovie(c *fiber.Ctx) error {
	id, found, err := s.parseQueryID(c)
	if err != nil {
		return nil
	}
	if found {
		if err := s.movieRepo.Delete(c.Context(), id); err != nil {
			return respondRepoError(c, err)
		}
	}

	return c.Redirect("/", fiber.StatusFound)
}

// FindCategory handles GET /find_category?category=
func (s *Server) FindCategory(c *fiber.Ctx) error {
	category := c.Query("category")
	if err := validation.ValidateCategory(category); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	movies, err := s.movieRepo.ListByCategory(c.Context(), category)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(fiber.Map{
		"category": category,
		"movies":   movies,
	})
}
