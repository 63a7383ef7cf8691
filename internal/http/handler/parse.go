package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sheetparse/internal/service"
)

var (
	errUnreadableBody   = errors.New("request body must be form data or JSON")
	errFileDataRequired = errors.New("fileData is required")
	errFilenameRequired = errors.New("filename is required")
	errKeyRequired      = errors.New("key is required")
)

type parseRequest struct {
	FileData string `json:"fileData" form:"fileData"`
	Filename string `json:"filename" form:"filename"`
}

type objectRequest struct {
	Key      string `json:"key" form:"key"`
	Filename string `json:"filename" form:"filename"`
}

// ParseSpreadsheet handles a base64 file upload. Parse outcomes, including
// failures, are always returned with HTTP 200 and a success flag in the body.
//
// @Summary Parse a base64-encoded spreadsheet or CSV file
// @Accept  x-www-form-urlencoded,mpfd,json
// @Produce json
// @Param   fileData formData string true "base64 file content"
// @Param   filename formData string true "original file name"
// @Success 200 {object} model.Envelope
// @Router  /parse-excel [post]
// @Router  /parse-base64 [post]
func ParseSpreadsheet(svc service.ParserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req parseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.JSON(service.InvalidRequest(errUnreadableBody))
		}
		switch {
		case req.FileData == "":
			return c.JSON(service.InvalidRequest(errFileDataRequired))
		case req.Filename == "":
			return c.JSON(service.InvalidRequest(errFilenameRequired))
		}
		return c.JSON(svc.ParseBase64(c.UserContext(), req.FileData, req.Filename))
	}
}

// ParseObject parses a file already stored in object storage.
//
// @Summary Parse a spreadsheet stored in object storage
// @Accept  x-www-form-urlencoded,mpfd,json
// @Produce json
// @Param   key      formData string true  "object key"
// @Param   filename formData string false "file name override"
// @Success 200 {object} model.Envelope
// @Router  /parse-object [post]
func ParseObject(svc service.ParserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req objectRequest
		if err := c.BodyParser(&req); err != nil {
			return c.JSON(service.InvalidRequest(errUnreadableBody))
		}
		if req.Key == "" {
			return c.JSON(service.InvalidRequest(errKeyRequired))
		}
		return c.JSON(svc.ParseObject(c.UserContext(), req.Key, req.Filename))
	}
}
