package document

import "html/template"

// DocumentType selects the page geometry and the layout template.
type DocumentType string

const (
	TypeSalary      DocumentType = "salary"
	TypeCertificate DocumentType = "cert"
	TypeLedger      DocumentType = "ledger"
)

// SalaryRecord is one employee's payslip for one pay period. All amounts are
// pre-formatted currency strings; the composer renders them as-is and never
// recomputes totals from the line items.
type SalaryRecord struct {
	PeriodTitle     string // heading, e.g. "2024년 1월"
	AttributionDate string // 귀속연월
	EmployeeInfo    string // 사원번호/명
	PayDate         string
	Department      string
	Position        string

	Earnings   SalaryEarnings
	Deductions SalaryDeductions

	GrossTotal     string // 지급합계
	DeductionTotal string // 공제합계
	NetPay         string // 실지급액

	OrgName   string
	Signatory string // 이사장 name
	Seal      string // optional seal image reference
}

// SalaryEarnings holds the eight earning line items in their fixed
// display order.
type SalaryEarnings struct {
	Base        string // 기본급
	Meal        string // 식 대
	Vehicle     string // 차량유지비
	Duty        string // 직책수당
	LongService string // 근속수당
	Overtime    string // 연장수당
	Childcare   string // 육아수당
	Bonus       string // 상여금
}

// SalaryDeductions holds the eight deduction line items in their fixed
// display order.
type SalaryDeductions struct {
	NationalPension     string // 국민연금
	HealthInsurance     string // 건강보험
	LongTermCare        string // 장기요양
	EmploymentInsurance string // 고용보험
	IncomeTax           string // 소득세
	LocalIncomeTax      string // 지방소득세
	Advance             string // 가불금
	CapitalContribution string // 출자금
}

// CertificateRecord is an employment certificate (재직증명서).
type CertificateRecord struct {
	DocumentNumber string // blank = issue one from the counter

	Name       string
	BirthDate  string
	Department string
	Position   string
	Address    string

	TenurePeriod string
	Purpose      string
	IssueDate    string // display string, e.g. "2024년 3월 1일"

	OrgName    string
	OrgAddress string
	OrgContact string
	OrgWebsite string
	Logo       string // optional logo image reference

	Signatory string
	Seal      string // optional seal image reference
}

// LedgerRecord is a whole-company payroll ledger (급여대장). The table body is
// built by the caller; the composer frames it verbatim and does not validate
// its column count.
type LedgerRecord struct {
	Title     string
	Logo      string // optional logo image reference
	TableBody template.HTML
}
