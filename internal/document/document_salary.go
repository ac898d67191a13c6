package document

import (
	"bytes"
	"html/template"
)

// lineItem is one labeled amount row in the earnings or deductions column.
type lineItem struct {
	Label  string
	Amount string
}

var salaryTmpl = template.Must(template.New("salary").Parse(`
<div class="print-salary" style="padding: 10px; height: 100%;">
    <h1 style="text-align:center; margin-bottom: 30px; font-size: 28px; margin-top: 50px;">{{.Record.PeriodTitle}} 급여명세서</h1>
    <table style="width:100%; margin-bottom:20px;">
        <tr><th style="background:#f5f5f5; padding:8px; width:18%;">귀속연월</th><td style="padding:8px; width:32%;">{{.Record.AttributionDate}}</td><th style="background:#f5f5f5; padding:8px; width:18%;">사원번호/명</th><td style="padding:8px;">{{.Record.EmployeeInfo}}</td></tr>
        <tr><th style="background:#f5f5f5; padding:8px;">지급일자</th><td style="padding:8px;">{{.Record.PayDate}}</td><th style="background:#f5f5f5; padding:8px;">소속/직급</th><td style="padding:8px;">{{.Record.Department}} / {{.Record.Position}}</td></tr>
    </table>
    <div style="display:flex; gap:20px; border-top:2px solid #888; padding-top:10px;">
        <div style="flex:1;">
            <div style="text-align:center; font-weight:bold; padding:5px; border-bottom:2px solid #0d47a1; color:#0d47a1; margin-bottom:5px;">지급내역</div>
            <table style="width:100%;">
{{- range .EarningRows}}
                <tr><td style="padding:5px; border:none; border-bottom:1px solid #eee;">{{.Label}}</td><td class="text-end" style="padding:5px; border:none; border-bottom:1px solid #eee;">{{.Amount}}</td></tr>
{{- end}}
            </table>
        </div>
        <div style="flex:1;">
            <div style="text-align:center; font-weight:bold; padding:5px; border-bottom:2px solid #b71c1c; color:#b71c1c; margin-bottom:5px;">공제내역</div>
            <table style="width:100%;">
{{- range .DeductionRows}}
                <tr><td style="padding:5px; border:none; border-bottom:1px solid #eee;">{{.Label}}</td><td class="text-end" style="padding:5px; border:none; border-bottom:1px solid #eee;">{{.Amount}}</td></tr>
{{- end}}
            </table>
        </div>
    </div>
    <div style="border-top:1px solid #999; margin-bottom:20px;"></div>
    <div style="height:120px; position:relative;">
        <div style="position:absolute; top:30px; left:20px; color:#666;">노고에 감사드립니다.</div>
        <table style="position:absolute; right:0; top:0; width:350px; background:#fff;">
            <tr><td style="background:#f5f5f5;">지급합계</td><td class="text-end">{{.Record.GrossTotal}}</td></tr>
            <tr><td style="background:#f5f5f5;">공제합계</td><td class="text-end">{{.Record.DeductionTotal}}</td></tr>
            <tr><td style="background:#f5f5f5;">실지급액</td><td class="text-end" style="font-weight:bold;">{{.Record.NetPay}}</td></tr>
        </table>
    </div>
    <div style="text-align:center; margin-top:40px; position:relative;">
        <span style="font-size:20px; font-weight:600;">{{.Record.OrgName}} 이사장 {{.Record.Signatory}}</span>
{{- if .Record.Seal}}
        <img src="{{.Record.Seal}}" style="position:absolute; width:60px; margin-left:-30px; top:-15px; opacity:0.8;">
{{- end}}
    </div>
</div>`))

// ComposeSalary renders one payslip content fragment. Pure: the same record
// always yields identical markup, and a blank seal simply omits the overlay.
func ComposeSalary(record SalaryRecord) (template.HTML, error) {
	data := struct {
		Record        SalaryRecord
		EarningRows   []lineItem
		DeductionRows []lineItem
	}{
		Record: record,
		EarningRows: []lineItem{
			{"기본급", record.Earnings.Base},
			{"식 대", record.Earnings.Meal},
			{"차량유지비", record.Earnings.Vehicle},
			{"직책수당", record.Earnings.Duty},
			{"근속수당", record.Earnings.LongService},
			{"연장수당", record.Earnings.Overtime},
			{"육아수당", record.Earnings.Childcare},
			{"상여금", record.Earnings.Bonus},
		},
		DeductionRows: []lineItem{
			{"국민연금", record.Deductions.NationalPension},
			{"건강보험", record.Deductions.HealthInsurance},
			{"장기요양", record.Deductions.LongTermCare},
			{"고용보험", record.Deductions.EmploymentInsurance},
			{"소득세", record.Deductions.IncomeTax},
			{"지방소득세", record.Deductions.LocalIncomeTax},
			{"가불금", record.Deductions.Advance},
			{"출자금", record.Deductions.CapitalContribution},
		},
	}

	var buf bytes.Buffer
	if err := salaryTmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}
