package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer-backend/internal/delivery/http/response"
	"resume-analyzer-backend/internal/domain"
)

type TaxonomyHandler struct {
	info domain.TaxonomyInfo
}

func NewTaxonomyHandler(info domain.TaxonomyInfo) *TaxonomyHandler {
	return &TaxonomyHandler{info: info}
}

// GetTaxonomy godoc
// @Summary      Keyword Taxonomy
// @Description  List the skill and experience keywords the matcher scores against, with their weights and the scoring mode.
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.TaxonomyInfo}
// @Router       /taxonomy [get]
func (h *TaxonomyHandler) GetTaxonomy(c *gin.Context) {
	response.Success(c, http.StatusOK, "Taxonomy retrieved", h.info)
}
