package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quagsire/internal/dto"
	"github.com/lshigami/Quagsire/internal/quizerr"
	"github.com/lshigami/Quagsire/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTermController struct {
	termService service.AdminTermService
}

func NewAdminTermController(termService service.AdminTermService) *AdminTermController {
	return &AdminTermController{termService: termService}
}

// @Summary (Admin) Add a slang term
// @Description Adds a new term to the lexicon that feeds quiz question generation.
// @Tags Admin - Terms
// @Accept json
// @Produce json
// @Param term body dto.TermCreateDTO true "Term data"
// @Success 201 {object} dto.TermResponseDTO "Term created"
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/terms [post]
func (c *AdminTermController) CreateTerm(ctx *gin.Context) {
	var req dto.TermCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTerm: invalid request body")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	term, err := c.termService.CreateTerm(req)
	if err != nil {
		respondTermError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, term)
}

// @Summary (Admin) List slang terms
// @Description Lists lexicon terms, optionally filtered by category and difficulty.
// @Tags Admin - Terms
// @Produce json
// @Param category query string false "Filter by category"
// @Param difficulty query string false "Filter by difficulty"
// @Success 200 {array} dto.TermResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/terms [get]
func (c *AdminTermController) ListTerms(ctx *gin.Context) {
	terms, err := c.termService.ListTerms(ctx.Query("category"), ctx.Query("difficulty"))
	if err != nil {
		respondTermError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, terms)
}

// @Summary (Admin) Get a slang term
// @Tags Admin - Terms
// @Produce json
// @Param name path string true "Term name"
// @Success 200 {object} dto.TermResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/terms/{name} [get]
func (c *AdminTermController) GetTerm(ctx *gin.Context) {
	term, err := c.termService.GetTerm(ctx.Param("name"))
	if err != nil {
		respondTermError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, term)
}

// @Summary (Admin) Delete a slang term
// @Tags Admin - Terms
// @Produce json
// @Param name path string true "Term name"
// @Success 204 "Term deleted"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/terms/{name} [delete]
func (c *AdminTermController) DeleteTerm(ctx *gin.Context) {
	if err := c.termService.DeleteTerm(ctx.Param("name")); err != nil {
		respondTermError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func respondTermError(ctx *gin.Context, err error) {
	var validationErr *quizerr.ValidationError
	if errors.As(err, &validationErr) {
		status := http.StatusBadRequest
		if validationErr.Reason == quizerr.ReasonTermNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{Error: validationErr.Message})
		return
	}
	log.Error().Err(err).Msg("Term operation failed")
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
