package document

import (
	"bytes"
	"html/template"
)

var certificateTmpl = template.Must(template.New("certificate").Parse(`
<div class="print-cert" style="padding: 20px; height: 100%; box-sizing: border-box; position: relative;">
{{- if .Logo}}
    <img src="{{.Logo}}" style="position:absolute; left:20px; top:20px; height:45px;">
{{- end}}
    <div style="text-align:right; font-size:12px; margin-top:20px; margin-bottom:5px;">{{.OrgWebsite}}</div>
    <h2 style="text-align:center; font-size: 32px; text-decoration: underline; margin: 50px 0 40px 0; font-weight: bold;">재 직 증 명 서</h2>
    <div style="text-align:right; font-size: 13px; margin-bottom: 20px;">문서번호: {{.DocumentNumber}}</div>

    <div style="text-align:left; font-weight: bold; font-size: 16px; margin-top: 10px; margin-bottom: 5px;">1. 인적사항</div>
    <table style="width:100%;">
        <tr><th style="background:#f9f9f9; width:100px; padding:6px 10px;">성 명</th><td style="padding:6px 10px;">{{.Name}}</td><th style="background:#f9f9f9; width:100px; padding:6px 10px;">생년월일</th><td style="padding:6px 10px;">{{.BirthDate}}</td></tr>
        <tr><th style="background:#f9f9f9; padding:6px 10px;">소 속</th><td style="padding:6px 10px;">{{.Department}}</td><th style="background:#f9f9f9; padding:6px 10px;">직 위</th><td style="padding:6px 10px;">{{.Position}}</td></tr>
        <tr><th style="background:#f9f9f9; padding:6px 10px;">주 소</th><td colspan="3" style="padding:6px 10px;">{{.Address}}</td></tr>
    </table>

    <div style="text-align:left; font-weight: bold; font-size: 16px; margin-top: 20px; margin-bottom: 5px;">2. 재직사항</div>
    <table style="width:100%;">
        <tr><th style="background:#f9f9f9; width:100px; padding:6px 10px;">재직기간</th><td colspan="3" style="padding:6px 10px;">{{.TenurePeriod}}</td></tr>
        <tr><th style="background:#f9f9f9; padding:6px 10px;">용 도</th><td colspan="3" style="padding:6px 10px;">{{.Purpose}}</td></tr>
    </table>

    <div style="text-align:center; margin-top: 60px; font-size: 18px;">위와 같이 재직하고 있음을 증명합니다.</div>
    <div style="text-align:center; margin-top: 30px; font-size: 18px;">{{.IssueDate}}</div>

    <div style="text-align:center; margin-top: 60px; position:relative;">
        <span style="font-size:24px; font-weight:bold; position:relative; z-index:1;">{{.OrgName}} 이사장 {{.Signatory}}</span>
{{- if .Seal}}
        <img src="{{.Seal}}" style="position:absolute; margin-left:-50px; top:-20px; width:80px; opacity:0.8; z-index:2;">
{{- end}}
    </div>
    <div style="text-align:center; margin-top: 70px; font-size: 12px; color: #555;">{{.OrgAddress}} {{.OrgName}}<br>문의: {{.OrgContact}}</div>
</div>`))

// ComposeCertificate renders one employment certificate content fragment.
// Blank optional fields (logo, seal) omit their elements; nothing errors on
// well-formed input.
func ComposeCertificate(record CertificateRecord) (template.HTML, error) {
	var buf bytes.Buffer
	if err := certificateTmpl.Execute(&buf, record); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}
