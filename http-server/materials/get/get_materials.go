package get

import (
	"net/http"

	"github.com/go-chi/render"

	"marmoraria-pro/internal/constants"
)

// GetMaterials serves the stone catalog for the environment form picker.
func GetMaterials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, constants.Materials)
	}
}
