package document_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yonginsolar/erp/internal/document"
)

func TestAssemble(t *testing.T) {
	content := template.HTML(`<div id="payload">hello</div>`)

	t.Run("wraps content in a complete printable shell", func(t *testing.T) {
		artifact, err := document.Assemble(document.TypeSalary, content)
		assert.NoError(t, err)

		assert.Equal(t, document.TypeSalary, artifact.Type)
		assert.Equal(t, document.Portrait, artifact.Geometry.Orientation)

		s := artifact.HTML
		assert.True(t, strings.HasPrefix(s, "<html>"))
		assert.Contains(t, s, "<title>인쇄 미리보기</title>")
		assert.Contains(t, s, string(content))
		assert.Contains(t, s, "bootstrap")
	})

	t.Run("control chrome is excluded from print output", func(t *testing.T) {
		artifact, err := document.Assemble(document.TypeCertificate, content)
		assert.NoError(t, err)

		s := artifact.HTML
		assert.Contains(t, s, `class="print-fab no-print"`)
		assert.Contains(t, s, "window.print()")
		assert.Contains(t, s, "window.close()")
		assert.Contains(t, s, ".no-print { display: none !important; }")
	})

	t.Run("page class follows the document type", func(t *testing.T) {
		salary, err := document.Assemble(document.TypeSalary, content)
		assert.NoError(t, err)
		assert.Contains(t, salary.HTML, `class="page-wrap print-salary"`)

		ledger, err := document.Assemble(document.TypeLedger, content)
		assert.NoError(t, err)
		assert.Contains(t, ledger.HTML, `class="page-wrap print-ledger"`)
		assert.Equal(t, document.Landscape, ledger.Geometry.Orientation)
	})

	t.Run("content fragment is injected without re-escaping", func(t *testing.T) {
		fragment, err := document.ComposeSalary(document.SalaryRecord{PeriodTitle: "2024년 1월"})
		assert.NoError(t, err)

		artifact, err := document.Assemble(document.TypeSalary, fragment)
		assert.NoError(t, err)
		assert.Contains(t, artifact.HTML, "급여명세서")
		assert.NotContains(t, artifact.HTML, "&lt;div")
	})
}
