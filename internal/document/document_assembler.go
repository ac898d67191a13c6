package document

import (
	"bytes"
	"html/template"
)

// Artifact is a complete, self-contained printable document: full HTML shell,
// page geometry, and the non-printing control chrome. Displaying it is the
// caller's side effect, not this package's.
type Artifact struct {
	Type     DocumentType
	Geometry Geometry
	HTML     string
}

var shellTmpl = template.Must(template.New("shell").Parse(`<html>
    <head>
        <title>인쇄 미리보기</title>
        <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
        <style>{{.CommonCSS}} {{.PageCSS}}</style>
    </head>
    <body>
        <div class="print-fab no-print">
            <span class="small fw-bold">인쇄 미리보기</span>
            <button class="btn btn-primary btn-sm rounded-pill" onclick="window.print()">🖨️ 인쇄하기</button>
            <button class="btn btn-secondary btn-sm rounded-pill" onclick="window.close()">닫기</button>
        </div>
        <div class="page-wrap {{.PageClass}}">
            <div class="print-content">{{.Content}}</div>
        </div>
    </body>
</html>`))

// Assemble wraps a composed content fragment into the full printable shell for
// its document type. No I/O happens here.
func Assemble(docType DocumentType, content template.HTML) (Artifact, error) {
	geometry, pageClass := StyleFor(docType)

	data := struct {
		CommonCSS template.CSS
		PageCSS   template.CSS
		PageClass string
		Content   template.HTML
	}{
		CommonCSS: template.CSS(commonCSS),
		PageCSS:   template.CSS(geometry.PageCSS),
		PageClass: pageClass,
		Content:   content,
	}

	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Type:     docType,
		Geometry: geometry,
		HTML:     buf.String(),
	}, nil
}
