package document

// Orientation is the physical A4 orientation of one document type.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Geometry is the fixed page setup injected into an assembled artifact.
type Geometry struct {
	Orientation Orientation
	PageCSS     string
}

// commonCSS is shared by every document type. The .print-fab control chrome is
// excluded from physical output via the print media rule.
const commonCSS = `
* { box-sizing: border-box; }
body { font-family: "Malgun Gothic", serif; margin: 0; padding: 0; background: #555; }
.print-fab { position: fixed; bottom: 30px; right: 30px; background: #fff; padding: 10px 15px; border-radius: 30px; z-index: 9999; display: flex; gap: 10px; border:1px solid #ccc; }
@media print { .no-print { display: none !important; } html, body { margin: 0; background: #fff; } }
`

// portraitCSS fits the payslip and the certificate on one A4 portrait page.
// The per-type zoom factors squeeze fixed-height content without touching the
// semantic structure.
const portraitCSS = `
@page { size: A4 portrait; margin: 0; }
.page-wrap { width: 210mm; height: 297mm; margin: 0 auto; padding: 15mm; background: white; overflow: hidden !important; }
table { width: 100%; border-collapse: collapse; font-size: 14px; }
th, td { border: 1px solid #000 !important; }
img { max-width: 100%; height: auto; }
.print-salary .print-content { zoom: 0.86; width: 100%; }
.print-cert .print-content { zoom: 0.98; width: 100%; position: relative; }
.text-end { text-align: right; } .fw-bold { font-weight: bold; }
`

const landscapeCSS = `
@page { size: A4 landscape; margin: 10mm; }
.page-wrap { width: 297mm; min-height: 210mm; padding: 15mm; background: white; margin: 20px auto; }
table { width: 100%; border-collapse: collapse; font-size: 11px; }
th, td { border: 1px solid #999; padding: 4px 6px; }
th { background-color: #f5f5f5; text-align: center; font-weight: bold; white-space: nowrap; }
.text-center { text-align: center; } .text-end { text-align: right; } .fw-bold { font-weight: bold; } .bg-light { background-color: #f9f9f9; }
`

// StyleFor returns the page geometry and content class for a document type.
// Total over the enum: unknown values fall back to portrait so a caller can
// never receive an unprintable artifact.
func StyleFor(docType DocumentType) (Geometry, string) {
	switch docType {
	case TypeLedger:
		return Geometry{Orientation: Landscape, PageCSS: landscapeCSS}, "print-ledger"
	case TypeSalary:
		return Geometry{Orientation: Portrait, PageCSS: portraitCSS}, "print-salary"
	default:
		return Geometry{Orientation: Portrait, PageCSS: portraitCSS}, "print-cert"
	}
}
