package pawsitiveserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondBindError reports a request body that could not be decoded.
func respondBindError(c *gin.Context, err error) {
	respondProblem(c, apierrors.ProblemBadRequest.WithDetail(err.Error()))
}

// respondServiceError maps a service error to its problem response by kind.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	apierrors.RespondError(c, err)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ProblemBadRequest.WithDetail(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

// created writes a 201 with a Location header for the new resource.
func created(c *gin.Context, location string, body any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, body)
}
