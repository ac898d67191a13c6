package document

import (
	"bytes"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ledgerTmpl = template.Must(template.New("ledger").Parse(`
<div style="padding: 10px;">
    <div style="display:flex; justify-content:space-between; align-items:start; margin-bottom: 20px;">
{{- if .Logo}}
        <img src="{{.Logo}}" style="height:40px;">
{{- else}}
        <div></div>
{{- end}}
        <div style="text-align:center;">
            <h1 style="margin:0; font-size: 24px; text-decoration: underline;">{{.Title}}</h1>
        </div>
        <table style="width: 200px; border-collapse: collapse; text-align: center; float: right; margin-bottom: 10px;">
            <tr><td style="border: 1px solid #000; background: #f0f0f0; font-size: 11px; padding: 2px; width:33%;">담당</td><td style="border: 1px solid #000; background: #f0f0f0; font-size: 11px; padding: 2px; width:33%;">사무국장</td><td style="border: 1px solid #000; background: #f0f0f0; font-size: 11px; padding: 2px; width:33%;">이사장</td></tr>
            <tr><td style="border: 1px solid #000; height: 50px;"></td><td style="border: 1px solid #000; height: 50px;"></td><td style="border: 1px solid #000; height: 50px;"></td></tr>
        </table>
    </div>
    <div style="clear:both;"></div>
    <table>
        <thead>
            <tr style="background:#e0e0e0;">
                <th rowspan="2" style="width:30px;">No</th><th rowspan="2" style="width:70px;">성명</th>
                <th colspan="6">지 급 내 역</th>
                <th colspan="7">공 제 내 역</th>
                <th rowspan="2">공제계</th><th rowspan="2">차인지급액</th>
            </tr>
            <tr style="background:#f0f0f0;">
                <th>기본급</th><th>식대</th><th>차량</th><th>기타수당</th><th>상여</th><th style="background:#fff3e0;">지급계</th>
                <th>국민연금</th><th>건강보험</th><th>장기요양</th><th>고용보험</th><th>소득세</th><th>지방세</th><th>기타공제</th>
            </tr>
        </thead>
        <tbody>{{.TableBody}}</tbody>
    </table>
</div>`))

// ComposeLedger frames a pre-built ledger body with the title block, sign-off
// grid, and the fixed 15-column table head. The body fragment goes in
// verbatim; column-count mismatches are the caller's responsibility.
func ComposeLedger(record LedgerRecord) (template.HTML, error) {
	var buf bytes.Buffer
	if err := ledgerTmpl.Execute(&buf, record); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}

// LedgerRow is one employee line for BuildLedgerRows. Amounts are raw won.
type LedgerRow struct {
	Name string

	Base    int64 // 기본급
	Meal    int64 // 식대
	Vehicle int64 // 차량
	Extra   int64 // 기타수당
	Bonus   int64 // 상여

	Pension    int64 // 국민연금
	Health     int64 // 건강보험
	Care       int64 // 장기요양
	Employment int64 // 고용보험
	IncomeTax  int64 // 소득세
	LocalTax   int64 // 지방세
	OtherDed   int64 // 기타공제
}

func (r LedgerRow) grossTotal() int64 {
	return r.Base + r.Meal + r.Vehicle + r.Extra + r.Bonus
}

func (r LedgerRow) deductionTotal() int64 {
	return r.Pension + r.Health + r.Care + r.Employment + r.IncomeTax + r.LocalTax + r.OtherDed
}

var ledgerRowTmpl = template.Must(template.New("ledgerRow").Parse(
	`<tr><td class="text-center">{{.No}}</td><td class="text-center">{{.Name}}</td>` +
		`{{range .Earnings}}<td class="text-end">{{.}}</td>{{end}}` +
		`<td class="text-end fw-bold">{{.Gross}}</td>` +
		`{{range .Deductions}}<td class="text-end">{{.}}</td>{{end}}` +
		`<td class="text-end fw-bold">{{.DeductionTotal}}</td>` +
		`<td class="text-end fw-bold">{{.Net}}</td></tr>`))

// BuildLedgerRows is a convenience for callers that hold typed amounts rather
// than markup: it renders the 15-column body fragment that ComposeLedger
// frames, with won amounts comma-grouped in the Korean locale. Using it is
// optional; any fragment is accepted by the composer.
func BuildLedgerRows(rows []LedgerRow) (template.HTML, error) {
	p := message.NewPrinter(language.Korean)
	won := func(n int64) string { return p.Sprintf("%d", n) }

	var buf bytes.Buffer
	for i, row := range rows {
		data := struct {
			No             int
			Name           string
			Earnings       []string
			Gross          string
			Deductions     []string
			DeductionTotal string
			Net            string
		}{
			No:   i + 1,
			Name: row.Name,
			Earnings: []string{
				won(row.Base), won(row.Meal), won(row.Vehicle), won(row.Extra), won(row.Bonus),
			},
			Gross: won(row.grossTotal()),
			Deductions: []string{
				won(row.Pension), won(row.Health), won(row.Care), won(row.Employment),
				won(row.IncomeTax), won(row.LocalTax), won(row.OtherDed),
			},
			DeductionTotal: won(row.deductionTotal()),
			Net:            won(row.grossTotal() - row.deductionTotal()),
		}

		if err := ledgerRowTmpl.Execute(&buf, data); err != nil {
			return "", err
		}
	}

	return template.HTML(buf.String()), nil
}
