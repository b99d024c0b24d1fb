package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/importer"
	"github.com/expense-tracker/backend/internal/importer/parser/ofx"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImportQuery struct {
	Preview bool `form:"preview"` // Only parse the file and return the previews without storing anything
}

// TransactionPreview is a transaction parsed from a statement.
type TransactionPreview struct {
	Transaction             TransactionEditable `json:"transaction"`
	ImportHash              string              `json:"importHash" example:"867e3a26dc0baf73f4bff506f31a97f6c32088917e9e5cf1a5ed6f3f84a6fa70"` // Hash of the statement line
	DuplicateTransactionIDs []uuid.UUID         `json:"duplicateTransactionIds"`                                                               // IDs of stored transactions with the same import hash
	CategoryRuleID          *uuid.UUID          `json:"categoryRuleId" example:"042d101d-f1de-4403-9295-59dc0ea58677"`                         // ID of the category rule that set the category
	SuggestedByID           *uuid.UUID          `json:"suggestedById" example:"8e0d4c2a-7b8e-4f1b-9f54-2a0a3b2d1c55"`                          // ID of the stored transaction with a similar merchant whose category was used
}

func newTransactionPreview(p importer.TransactionPreview) TransactionPreview {
	return TransactionPreview{
		Transaction:             transactionEditable(p.Transaction),
		ImportHash:              p.Transaction.ImportHash,
		DuplicateTransactionIDs: p.DuplicateTransactionIDs,
		CategoryRuleID:          p.CategoryRuleID,
		SuggestedByID:           p.SuggestedByID,
	}
}

type ImportPreviewResponse struct {
	Data  []TransactionPreview `json:"data"`                                                               // List of transaction previews
	Error *string              `json:"error" example:"the file does not contain any bank or credit card statement"` // The error, if any occurred
}

type ImportResponse struct {
	Data  []Transaction `json:"data"`                                                                   // The stored transactions. Duplicates are not part of the list.
	Error *string       `json:"error" example:"the file does not contain any bank or credit card statement"` // The error, if any occurred
}

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/ofx", OptionsImportOFX)
	r.POST("/ofx", ImportOFX)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/ofx [options]
func OptionsImportOFX(c *gin.Context) {
	httputil.OptionsPost(c)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffixes ...string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	name := strings.ToLower(formFile.Filename)
	supported := false
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			supported = true
			break
		}
	}

	if !supported {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, strings.Join(suffixes, ", "))
	}

	return formFile.Open()
}

// @Summary		Import OFX statement
// @Description	Imports the transactions of an OFX or QFX bank statement. Categories are set by category rules or suggested from transactions with a similar merchant. Lines that were imported before are skipped.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ImportPreviewResponse
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	ImportResponse
// @Failure		500		{object}	ImportResponse
// @Param			file	formData	file	true	"File to import"
// @Param			preview	query		bool	false	"Only return the previews, do not store anything"
// @Router			/v1/import/ofx [post]
func ImportOFX(c *gin.Context) {
	var query ImportQuery
	err := httputil.BindQuery(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	f, err := getUploadedFile(c, ".ofx", ".qfx")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}
	defer f.Close()

	previews, err := ofx.Parse(f)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	err = importer.Prepare(models.DB, previews)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	if query.Preview {
		data := make([]TransactionPreview, 0, len(previews))
		for _, p := range previews {
			data = append(data, newTransactionPreview(p))
		}

		c.JSON(http.StatusOK, ImportPreviewResponse{Data: data})
		return
	}

	created, err := importer.Create(models.DB, previews)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	data, err := transactionsWithCategories(c, created)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: data})
}
