package v1

import (
	"errors"
	"net/http"

	"staffing-site-backend/internal/delivery/http/response"
	"staffing-site-backend/internal/domain"
	"staffing-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxContactBodyBytes caps the public form body; real submissions are a few KB
const maxContactBodyBytes = 64 << 10

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes. submitGuard wraps the public POST,
// adminGuard the submissions listing.
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase, submitGuard, adminGuard gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	api.POST("/contact", submitGuard, handler.SubmitContact)
	api.GET("/contact-submissions", adminGuard, handler.ListSubmissions)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Store a contact inquiry and email the team and the submitter. Email failures do not fail the request.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactInquiry  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      413      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

	var input map[string]any
	err := c.ShouldBindJSON(&input)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		_ = c.Error(apperror.New(http.StatusRequestEntityTooLarge, "Request body too large", nil))
		return
	}
	if err != nil || input == nil {
		_ = c.Error(&domain.ValidationError{Fields: []domain.FieldError{
			{Message: "Request body must be a JSON object"},
		}})
		return
	}

	inquiry, err := h.contactUC.Validate(input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.contactUC.Submit(c.Request.Context(), inquiry)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, http.StatusOK, "Contact form submitted successfully", result.Submission.ID)
}

// ListSubmissions godoc
// @Summary      List Contact Submissions
// @Description  Every stored contact submission, oldest first. Requires an admin bearer token when ADMIN_JWT_SECRET is set.
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ContactSubmission
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /contact-submissions [get]
func (h *ContactHandler) ListSubmissions(c *gin.Context) {
	submissions, err := h.contactUC.ListSubmissions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}
