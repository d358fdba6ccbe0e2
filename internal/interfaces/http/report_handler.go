package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/report"
)

// ReportHandler descarga del reporte de inventario en PDF.
type ReportHandler struct {
	uc *report.PDFUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.PDFUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string  "PDF"
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GenerateInventoryPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.pdf"`)
	return c.Send(pdfBytes)
}
