package handler

import (
	"bytes"
	"mime/multipart"
	"sort"

	"github.com/gofiber/fiber/v2"

	"pdfmanager/internal/model"
	"pdfmanager/internal/service"
)

const (
	fileField  = "file"
	labelField = "label"
)

// listResponse wraps the document list.
type listResponse struct {
	Data []model.Document `json:"data"`
}

type updateLabelBody struct {
	Label *string `json:"label"`
}

// ListDocuments godoc
// @Summary List documents
// @Description Returns every document ordered by ascending id.
// @Tags documents
// @Produce json
// @Success 201 {object} listResponse
// @Failure 500 {object} errorPayload
// @Router / [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		if docs == nil {
			docs = []model.Document{}
		}
		return c.Status(fiber.StatusCreated).JSON(listResponse{Data: docs})
	}
}

// UploadDocument godoc
// @Summary Upload a PDF
// @Description Stores the PDF, schedules its thumbnail and records it with a label.
// @Tags documents
// @Accept mpfd
// @Produce json
// @Param file formData file true "PDF file"
// @Param label formData string true "Document label"
// @Success 201 {object} messagePayload
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /upload [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.UploadInput

		// A request that is not multipart simply has no file part.
		if form, err := c.MultipartForm(); err == nil {
			if vals := form.Value[labelField]; len(vals) > 0 {
				in.Label = vals[0]
			}
			if fh := pickFile(form); fh != nil {
				f, err := fh.Open()
				if err != nil {
					return err
				}
				defer f.Close()

				in.File = f
				in.Filename = fh.Filename
				in.ContentType = fh.Header.Get(fiber.HeaderContentType)
				in.Size = fh.Size
			}
		}

		if _, err := svc.Upload(c.UserContext(), in); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(messagePayload{Message: "Success"})
	}
}

// pickFile prefers the "file" field and otherwise takes the first file part,
// with field names visited in sorted order.
func pickFile(form *multipart.Form) *multipart.FileHeader {
	if fhs := form.File[fileField]; len(fhs) > 0 {
		return fhs[0]
	}
	fields := make([]string, 0, len(form.File))
	for name := range form.File {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		if fhs := form.File[name]; len(fhs) > 0 {
			return fhs[0]
		}
	}
	return nil
}

// UpdateLabel godoc
// @Summary Rename a document
// @Description Replaces the label of an existing document.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param body body updateLabelBody true "New label (2-100 characters)"
// @Success 200 {object} messagePayload
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /update/{id} [patch]
func UpdateLabel(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := service.ParseID(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}

		// an empty body reads as {} so the label check reports it
		var body updateLabelBody
		if len(bytes.TrimSpace(c.Body())) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
			}
		}

		if err := svc.Rename(c.UserContext(), service.RenameRequest{ID: id, Label: body.Label}); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(messagePayload{Message: "Label updated"})
	}
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Removes the row, then the PDF and thumbnail files.
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 201 {object} messagePayload
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /remove/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := service.ParseID(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(messagePayload{Message: "Document deleted"})
	}
}
