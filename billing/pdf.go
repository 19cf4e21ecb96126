package billing

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/smartcafe/ordering-app/models"
)

// Format struk: lebar 90mm ala thermal receipt, tinggi halaman longgar
// supaya daftar item panjang tetap muat sebelum page break.
const (
	billPageWidth  = 90.0
	billPageHeight = 300.0
	billMargin     = 7.0
)

// GenerateBillPDF merender bill satu order menjadi PDF di memori dan
// mengembalikan nama file beserta byte-nya. Seluruh render terjadi di buffer
// dulu; kalau gagal tidak ada satu byte pun yang terkirim ke client, jadi
// tidak pernah ada download yang korup setengah jalan.
func GenerateBillPDF(order *models.Order, settings models.Settings, title string) (string, []byte, error) {
	if title == "" {
		title = "Restaurant Bill"
	}

	bill := CalculateForOrder(order)
	taxRate := order.TaxPercent

	now := time.Now()
	dateStr := now.Format("02/01/2006")
	timeStr := now.Format("15:04:05")

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: billPageWidth, Ht: billPageHeight},
	})
	pdf.SetMargins(billMargin, billMargin, billMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	usable := billPageWidth - 2*billMargin

	// Header restoran: logo dan tiap baris kontak hanya dirender kalau ada.
	if settings.LogoURL != "" {
		drawLogo(pdf, settings.LogoURL, usable)
	}
	pdf.SetFont("Helvetica", "B", 16)
	name := settings.RestaurantName
	if name == "" {
		name = "Smart Café"
	}
	pdf.CellFormat(usable, 8, tr(name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	for _, line := range []string{settings.Address, settings.Phone, settings.Contact} {
		if line != "" {
			pdf.CellFormat(usable, 4.5, tr(line), "", 1, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(usable, 8, tr(title), "", 1, "C", false, 0, "")
	drawDivider(pdf, usable)

	// Metadata bill. Tanggal/jam adalah waktu generate, bukan waktu order.
	customer := order.CustomerName
	if customer == "" {
		customer = "Walk-in Customer"
	}
	table := order.TableNumber
	if table == "" {
		table = "N/A"
	}
	pdf.SetFont("Helvetica", "", 9)
	metaRow(pdf, usable, "Bill No:", "#"+order.ShortID())
	metaRow(pdf, usable, "Table No:", table)
	metaRow(pdf, usable, "Customer:", tr(customer))
	metaRow(pdf, usable, "Date:", dateStr)
	metaRow(pdf, usable, "Time:", timeStr)
	drawDivider(pdf, usable)

	// Tabel item.
	pdf.SetFont("Helvetica", "B", 9)
	colName := usable * 0.42
	colQty := usable * 0.13
	colPrice := usable * 0.22
	colTotal := usable * 0.23
	pdf.CellFormat(colName, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colPrice, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(order.Items) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(usable, 6, "No items ordered", "B", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	for _, it := range order.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		itemName := it.Name
		if itemName == "" {
			itemName = "Item"
		}
		lineTotal := it.Price * float64(qty)
		pdf.CellFormat(colName, 6, tr(truncateText(itemName, 24)), "B", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", qty), "B", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 6, formatAmount(it.Price), "B", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, formatAmount(lineTotal), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	drawDivider(pdf, usable)

	// Blok total memakai kalkulator yang sama dengan semua view lain.
	totalRow(pdf, usable, "Subtotal:", formatAmount(bill.Subtotal), false)
	totalRow(pdf, usable, fmt.Sprintf("Tax (%s%%):", trimRate(taxRate)), formatAmount(bill.Tax), false)
	totalRow(pdf, usable, "Total Amount:", formatAmount(bill.Total), true)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(usable, 4.5, "Thank you for dining with us!", "", 1, "C", false, 0, "")
	pdf.CellFormat(usable, 4.5, fmt.Sprintf("Generated on %s at %s", dateStr, timeStr), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, fmt.Errorf("render bill pdf: %w", err)
	}

	filename := fmt.Sprintf("Bill_%s_%s_%s.pdf", order.ShortID(), table, now.Format("2006-01-02"))
	return filename, buf.Bytes(), nil
}

// drawLogo mengambil logo dari URL dengan timeout pendek; kalau gagal, header
// dirender tanpa logo dan bill tetap jadi.
func drawLogo(pdf *fpdf.Fpdf, logoURL string, usable float64) {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(logoURL)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}

	imageType := ""
	switch resp.Header.Get("Content-Type") {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	default:
		return
	}

	opts := fpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader("restaurant-logo", opts, resp.Body)
	if info == nil || pdf.Err() {
		// Logo rusak tidak boleh menggagalkan seluruh bill.
		pdf.ClearError()
		return
	}
	logoW := 24.0
	x := billMargin + (usable-logoW)/2
	pdf.ImageOptions("restaurant-logo", x, pdf.GetY(), logoW, 0, true, opts, 0, "")
	pdf.Ln(2)
}

func metaRow(pdf *fpdf.Fpdf, usable float64, label, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(usable*0.4, 5, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(usable*0.6, 5, value, "", 1, "R", false, 0, "")
}

func totalRow(pdf *fpdf.Fpdf, usable float64, label, value string, grand bool) {
	if grand {
		pdf.SetFont("Helvetica", "B", 12)
	} else {
		pdf.SetFont("Helvetica", "B", 9)
	}
	pdf.CellFormat(usable*0.55, 6, label, "", 0, "L", false, 0, "")
	if !grand {
		pdf.SetFont("Helvetica", "", 9)
	}
	pdf.CellFormat(usable*0.45, 6, value, "", 1, "R", false, 0, "")
}

func drawDivider(pdf *fpdf.Fpdf, usable float64) {
	pdf.Ln(1)
	x := billMargin
	y := pdf.GetY()
	pdf.SetDrawColor(51, 51, 51)
	pdf.Line(x, y, x+usable, y)
	pdf.Ln(2)
}

// formatAmount -> pembulatan dua digit hanya di presentasi.
func formatAmount(v float64) string {
	return fmt.Sprintf("Rs %.2f", v)
}

// trimRate menampilkan "5" untuk 5.00 tapi "7.5" untuk 7.50.
func trimRate(rate float64) string {
	s := fmt.Sprintf("%.2f", rate)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
