package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/export"
)

// ExportHandler descarga de las colecciones en CSV.
type ExportHandler struct {
	uc *export.CSVUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.CSVUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Products godoc
// @Summary      Exportar productos en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string  "CSV"
// @Router       /api/export/products.csv [get]
func (h *ExportHandler) Products(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.WriteProducts(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(buf.Bytes())
}

// Movements godoc
// @Summary      Exportar movimientos en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string  "CSV"
// @Router       /api/export/movements.csv [get]
func (h *ExportHandler) Movements(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.WriteMovements(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movements.csv"`)
	return c.Send(buf.Bytes())
}
