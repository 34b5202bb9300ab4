package labels

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
)

// renderProductLabelsPDF renders one A4 landscape page per product with a
// scannable code128 barcode of the product code.
func renderProductLabelsPDF(products []ProductLabelData, printedAt time.Time) ([]byte, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("no labels to render")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Product Labels", false)

	for i, product := range products {
		code := strings.TrimSpace(product.Code)
		if code == "" {
			return nil, fmt.Errorf("product label %d has an empty code", i)
		}
		barcodePNG, err := renderCode128PNG(code, 1200, 260)
		if err != nil {
			return nil, fmt.Errorf("barcode for %s: %w", code, err)
		}

		pdf.AddPage()
		name := strings.TrimSpace(product.Name)
		if name == "" {
			name = "Unnamed Product"
		}

		pdf.SetFont("Helvetica", "B", 44)
		pdf.CellFormat(0, 20, name, "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "B", 52)
		pdf.CellFormat(0, 22, code, "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 16)
		if unit := strings.TrimSpace(product.Unit); unit != "" {
			pdf.CellFormat(0, 9, "Unit: "+unit, "", 1, "C", false, 0, "")
		}
		pdf.CellFormat(0, 9, "Printed: "+printedAt.Format("02/01/2006"), "", 1, "C", false, 0, "")

		opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		imageName := fmt.Sprintf("product-barcode-%d", i)
		pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
		pageW, _ := pdf.GetPageSize()
		imgW := 240.0
		imgH := 56.0
		x := (pageW - imgW) / 2
		y := 112.0
		pdf.ImageOptions(imageName, x, y, imgW, imgH, false, opt, 0, "")

		pdf.SetY(y + imgH + 6)
		pdf.SetFont("Helvetica", "B", 24)
		pdf.CellFormat(0, 12, code, "", 1, "C", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
