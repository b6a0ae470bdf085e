package api

import (
	"fmt"
	"net/http"

	"offer-service/internal/domain/offer"
	"offer-service/internal/handler/dto/request"
	"offer-service/internal/handler/dto/response"
	"offer-service/internal/handler/httperr"
	"offer-service/internal/pkg/errs"
	"offer-service/internal/usecase/commands"
	"offer-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	cmds commands.OfferCommands
	qs   queries.OfferQueries
}

func NewOfferHandler(cmds commands.OfferCommands, qs queries.OfferQueries) *OfferHandler {
	return &OfferHandler{cmds: cmds, qs: qs}
}

// Create godoc
// @Summary      Create an offer
// @Description  Creates a new active offer with a mandatory future expiry date
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        request body request.CreateOfferRequest true "Offer payload"
// @Success      201 {object} response.OfferResponse
// @Failure      400 {object} httperr.Response
// @Router       /offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	var req request.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	view, err := h.qs.GetByID(c.Request.Context(), result.OfferID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+result.OfferID.String())
	c.JSON(http.StatusCreated, response.FromOfferView(view))
}

// Get godoc
// @Summary      Get an offer
// @Description  Returns a single offer, its status corrected for elapsed expiry
// @Tags         offers
// @Produce      json
// @Param        id path string true "Offer ID"
// @Success      200 {object} response.OfferResponse
// @Failure      404 {object} httperr.Response
// @Router       /offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer id", nil)
		return
	}

	view, err := h.qs.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromOfferView(view))
}

// List godoc
// @Summary      List offers
// @Description  Lists all offers, or searches by description when the query parameter is present
// @Tags         offers
// @Produce      json
// @Param        description query string false "Case-insensitive description fragment"
// @Success      200 {object} map[string][]response.OfferResponse
// @Router       /offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	description, hasSearch := c.GetQuery("description")

	var (
		views []*queries.OfferView
		err   error
	)
	if hasSearch {
		views, err = h.qs.ListByDescription(c.Request.Context(), description)
	} else {
		views, err = h.qs.ListAll(c.Request.Context())
	}
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": response.FromOfferList(views)})
}

// Cancel godoc
// @Summary      Cancel an offer
// @Description  Cancels an active offer; expired or already cancelled offers are rejected
// @Tags         offers
// @Produce      json
// @Param        id path string true "Offer ID"
// @Success      200 {object} response.OfferResponse
// @Failure      404 {object} httperr.Response
// @Failure      409 {object} httperr.Response
// @Router       /offers/cancel/{id} [put]
func (h *OfferHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer id", nil)
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), id); err != nil {
		abortWithDomainError(c, err, id)
		return
	}

	view, err := h.qs.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, response.FromOfferView(view))
}

// abortWithDomainError maps domain failures onto HTTP statuses. Terminal-state
// cancel rejections report 409 so the caller can tell a state conflict apart
// from a malformed request. Classification goes through errs.Is because the
// validation sentinels carry their shared mark rather than a wrap chain.
func abortWithDomainError(c *gin.Context, err error, id ...uuid.UUID) {
	switch {
	case errs.Is(err, errs.ErrOfferNotFound):
		msg := "Offer not found"
		if len(id) > 0 {
			msg = fmt.Sprintf("Offer with id %s not found", id[0])
		}
		httperr.AbortWithError(c, http.StatusNotFound, err, msg, nil)
	case errs.Is(err, offer.ErrOfferExpired), errs.Is(err, offer.ErrOfferAlreadyCancelled):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
