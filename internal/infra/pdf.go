package infra

// pdf.go — label sheet generation using go-pdf/fpdf. Each page is one label
// at the template's exact millimeter size; elements draw in z-order.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"stocklabel/internal/label"

	"github.com/go-pdf/fpdf"
)

// LabelData resolves the template's data fields for one printed label.
type LabelData struct {
	ProductName string
	Features    string
	Price       string
	Date        string
	Code        string
}

func (d LabelData) value(field string) string {
	switch field {
	case label.FieldProductName:
		return d.ProductName
	case label.FieldFeatures:
		return d.Features
	case label.FieldPrice:
		return d.Price
	case label.FieldDate:
		return d.Date
	case label.FieldBarcode:
		return d.Code
	default:
		return ""
	}
}

// GenerateLabelPDF renders copies of one label to a PDF file under
// storagePath and returns the file path.
func GenerateLabelPDF(t *label.Template, data LabelData, copies int, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	if copies < 1 {
		copies = 1
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: t.WidthMm, Ht: t.HeightMm},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	// The barcode image is identical on every copy; register it once.
	barcodeRegistered := false
	for page := 0; page < copies; page++ {
		pdf.AddPage()
		for _, el := range t.Elements {
			switch el.Kind {
			case label.KindText:
				drawText(pdf, el, data.value(el.Field))
			case label.KindBarcode:
				if err := drawBarcode(pdf, el, data.Code, &barcodeRegistered); err != nil {
					return "", err
				}
				// code printed below the bars is part of the element box
			case label.KindImage:
				// logo slot: outline only until asset upload exists
				pdf.Rect(el.X, el.Y, el.Width, el.Height, "D")
			}
		}
	}

	fileName := fmt.Sprintf("label_%s.pdf", data.Code)
	filePath := filepath.Join(storagePath, fileName)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func drawText(pdf *fpdf.Fpdf, el label.Element, value string) {
	style := ""
	size := float64(label.DefaultFontSize)
	align := "L"
	if el.Text != nil {
		if el.Text.Bold {
			style += "B"
		}
		if el.Text.Italic {
			style += "I"
		}
		size = el.Text.FontSize
		switch el.Text.Align {
		case label.AlignCenter:
			align = "C"
		case label.AlignRight:
			align = "R"
		}
	}
	pdf.SetFont("Helvetica", style, size)
	pdf.SetXY(el.X, el.Y)
	pdf.CellFormat(el.Width, el.Height, value, "", 0, align, false, 0, "")
}

func drawBarcode(pdf *fpdf.Fpdf, el label.Element, code string, registered *bool) error {
	const imageName = "label-barcode"
	if !*registered {
		// Render at 8 px/mm so the bars stay sharp at print DPI.
		png, err := label.RenderBarcodePNG(code, int(el.Width*8), int(el.Height*8))
		if err != nil {
			return fmt.Errorf("pdf: render barcode: %w", err)
		}
		pdf.RegisterImageOptionsReader(imageName,
			fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		*registered = true
	}
	pdf.ImageOptions(imageName, el.X, el.Y, el.Width, el.Height, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}
