package document_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yonginsolar/erp/internal/document"
)

func TestComposeLedger(t *testing.T) {
	t.Run("frames the body fragment verbatim", func(t *testing.T) {
		body := `<tr><td>1</td><td>김철수</td></tr>`
		html, err := document.ComposeLedger(document.LedgerRecord{
			Title:     "2024년 1월 급여대장",
			TableBody: template.HTML(body),
		})
		assert.NoError(t, err)

		s := string(html)
		assert.Contains(t, s, "<tbody>"+body+"</tbody>")
		assert.Contains(t, s, "2024년 1월 급여대장")
	})

	t.Run("sign-off grid carries the three fixed roles", func(t *testing.T) {
		html, err := document.ComposeLedger(document.LedgerRecord{Title: "급여대장"})
		assert.NoError(t, err)

		s := string(html)
		for _, role := range []string{"담당", "사무국장", "이사장"} {
			assert.Contains(t, s, role)
		}
	})

	t.Run("table head groups earnings and deductions", func(t *testing.T) {
		html, err := document.ComposeLedger(document.LedgerRecord{Title: "급여대장"})
		assert.NoError(t, err)

		s := string(html)
		assert.Contains(t, s, "지 급 내 역")
		assert.Contains(t, s, "공 제 내 역")
		assert.Contains(t, s, "지급계")
		assert.Contains(t, s, "공제계")
		assert.Contains(t, s, "차인지급액")
	})

	t.Run("logo renders only when set", func(t *testing.T) {
		without, err := document.ComposeLedger(document.LedgerRecord{Title: "급여대장"})
		assert.NoError(t, err)
		assert.NotContains(t, string(without), "<img")

		with, err := document.ComposeLedger(document.LedgerRecord{
			Title: "급여대장",
			Logo:  "/img/logo.png",
		})
		assert.NoError(t, err)
		assert.Contains(t, string(with), `src="/img/logo.png"`)
	})
}

func TestBuildLedgerRows(t *testing.T) {
	t.Run("amounts are comma grouped and totals computed", func(t *testing.T) {
		rows := []document.LedgerRow{
			{
				Name: "김철수",
				Base: 2500000, Meal: 200000, Vehicle: 0, Extra: 150000, Bonus: 0,
				Pension: 112500, Health: 88620, Care: 11350, Employment: 22800,
				IncomeTax: 41630, LocalTax: 4160, OtherDed: 0,
			},
		}

		body, err := document.BuildLedgerRows(rows)
		assert.NoError(t, err)

		s := string(body)
		assert.Contains(t, s, "2,500,000")
		assert.Contains(t, s, "2,850,000") // gross
		assert.Contains(t, s, "281,060")   // deduction total
		assert.Contains(t, s, "2,568,940") // net
	})

	t.Run("rows are numbered from one", func(t *testing.T) {
		rows := []document.LedgerRow{{Name: "A"}, {Name: "B"}, {Name: "C"}}

		body, err := document.BuildLedgerRows(rows)
		assert.NoError(t, err)

		s := string(body)
		assert.Equal(t, 3, strings.Count(s, "<tr>"))
		assert.Contains(t, s, `<td class="text-center">1</td><td class="text-center">A</td>`)
		assert.Contains(t, s, `<td class="text-center">3</td><td class="text-center">C</td>`)
	})

	t.Run("each row spans the fifteen numeric columns", func(t *testing.T) {
		body, err := document.BuildLedgerRows([]document.LedgerRow{{Name: "김철수"}})
		assert.NoError(t, err)

		// 2 label cells + 5 earnings + gross + 7 deductions + deduction total + net
		assert.Equal(t, 17, strings.Count(string(body), "<td"))
	})

	t.Run("empty input builds an empty body", func(t *testing.T) {
		body, err := document.BuildLedgerRows(nil)
		assert.NoError(t, err)
		assert.Empty(t, string(body))
	})
}
