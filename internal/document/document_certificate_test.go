package document_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yonginsolar/erp/internal/document"
)

func sampleCertificateRecord() document.CertificateRecord {
	return document.CertificateRecord{
		DocumentNumber: "제2024-0012호",
		Name:           "Kim",
		BirthDate:      "1990-05-14",
		Department:     "관리부",
		Position:       "과장",
		Address:        "경기도 용인시",
		TenurePeriod:   "2020-03-01 ~ 재직중",
		Purpose:        "금융기관 제출용",
		IssueDate:      "2024년 3월 1일",
		OrgName:        "용인태양광발전소",
		OrgAddress:     "경기도 용인시 처인구",
		OrgContact:     "031-000-0000",
		OrgWebsite:     "www.yonginsolar.kr",
		Signatory:      "박영희",
	}
}

func TestComposeCertificate(t *testing.T) {
	t.Run("renders every personal and tenure field", func(t *testing.T) {
		html, err := document.ComposeCertificate(sampleCertificateRecord())
		assert.NoError(t, err)

		s := string(html)
		assert.Contains(t, s, "재 직 증 명 서")
		assert.Contains(t, s, "인적사항")
		assert.Contains(t, s, "재직사항")
		assert.Contains(t, s, "제2024-0012호")
		assert.Contains(t, s, "2020-03-01 ~ 재직중")
		assert.Contains(t, s, "위와 같이 재직하고 있음을 증명합니다.")
	})

	t.Run("name appears exactly once, no seal without a seal", func(t *testing.T) {
		html, err := document.ComposeCertificate(sampleCertificateRecord())
		assert.NoError(t, err)

		s := string(html)
		assert.Equal(t, 1, strings.Count(s, "Kim"))
		assert.NotContains(t, s, "<img")
	})

	t.Run("seal and logo render only when set", func(t *testing.T) {
		record := sampleCertificateRecord()
		record.Seal = "/img/seal.png"
		record.Logo = "/img/logo.png"

		html, err := document.ComposeCertificate(record)
		assert.NoError(t, err)

		s := string(html)
		assert.Contains(t, s, `src="/img/seal.png"`)
		assert.Contains(t, s, `src="/img/logo.png"`)
	})

	t.Run("signature line holds org, title, and signatory", func(t *testing.T) {
		html, err := document.ComposeCertificate(sampleCertificateRecord())
		assert.NoError(t, err)
		assert.Contains(t, string(html), "용인태양광발전소 이사장 박영희")
	})

	t.Run("markup in the name is escaped", func(t *testing.T) {
		record := sampleCertificateRecord()
		record.Name = "<b>Kim</b>"

		html, err := document.ComposeCertificate(record)
		assert.NoError(t, err)
		assert.NotContains(t, string(html), "<b>Kim</b>")
		assert.Contains(t, string(html), "&lt;b&gt;Kim&lt;/b&gt;")
	})
}
