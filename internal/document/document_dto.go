package document

import "html/template"

type PrintSalaryRequest struct {
	PeriodTitle     string `json:"period_title" binding:"required"`
	AttributionDate string `json:"attribution_date"`
	EmployeeInfo    string `json:"employee_info" binding:"required"`
	PayDate         string `json:"pay_date"`
	Department      string `json:"department"`
	Position        string `json:"position"`

	Earnings   SalaryEarningsPayload   `json:"earnings"`
	Deductions SalaryDeductionsPayload `json:"deductions"`

	GrossTotal     string `json:"gross_total"`
	DeductionTotal string `json:"deduction_total"`
	NetPay         string `json:"net_pay"`

	OrgName   string `json:"org_name" binding:"required"`
	Signatory string `json:"signatory"`
	Seal      string `json:"seal"`
}

type SalaryEarningsPayload struct {
	Base        string `json:"base"`
	Meal        string `json:"meal"`
	Vehicle     string `json:"vehicle"`
	Duty        string `json:"duty"`
	LongService string `json:"long_service"`
	Overtime    string `json:"overtime"`
	Childcare   string `json:"childcare"`
	Bonus       string `json:"bonus"`
}

type SalaryDeductionsPayload struct {
	NationalPension     string `json:"national_pension"`
	HealthInsurance     string `json:"health_insurance"`
	LongTermCare        string `json:"long_term_care"`
	EmploymentInsurance string `json:"employment_insurance"`
	IncomeTax           string `json:"income_tax"`
	LocalIncomeTax      string `json:"local_income_tax"`
	Advance             string `json:"advance"`
	CapitalContribution string `json:"capital_contribution"`
}

func (r PrintSalaryRequest) toRecord() SalaryRecord {
	return SalaryRecord{
		PeriodTitle:     r.PeriodTitle,
		AttributionDate: r.AttributionDate,
		EmployeeInfo:    r.EmployeeInfo,
		PayDate:         r.PayDate,
		Department:      r.Department,
		Position:        r.Position,
		Earnings:        SalaryEarnings(r.Earnings),
		Deductions:      SalaryDeductions(r.Deductions),
		GrossTotal:      r.GrossTotal,
		DeductionTotal:  r.DeductionTotal,
		NetPay:          r.NetPay,
		OrgName:         r.OrgName,
		Signatory:       r.Signatory,
		Seal:            r.Seal,
	}
}

type PrintCertificateRequest struct {
	DocumentNumber string `json:"document_number"`

	Name       string `json:"name" binding:"required"`
	BirthDate  string `json:"birth_date"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Address    string `json:"address"`

	TenurePeriod string `json:"tenure_period" binding:"required"`
	Purpose      string `json:"purpose"`
	IssueDate    string `json:"issue_date" binding:"required"`

	OrgName    string `json:"org_name" binding:"required"`
	OrgAddress string `json:"org_address"`
	OrgContact string `json:"org_contact"`
	OrgWebsite string `json:"org_website"`
	Logo       string `json:"logo"`

	Signatory string `json:"signatory"`
	Seal      string `json:"seal"`
}

func (r PrintCertificateRequest) toRecord() CertificateRecord {
	return CertificateRecord{
		DocumentNumber: r.DocumentNumber,
		Name:           r.Name,
		BirthDate:      r.BirthDate,
		Department:     r.Department,
		Position:       r.Position,
		Address:        r.Address,
		TenurePeriod:   r.TenurePeriod,
		Purpose:        r.Purpose,
		IssueDate:      r.IssueDate,
		OrgName:        r.OrgName,
		OrgAddress:     r.OrgAddress,
		OrgContact:     r.OrgContact,
		OrgWebsite:     r.OrgWebsite,
		Logo:           r.Logo,
		Signatory:      r.Signatory,
		Seal:           r.Seal,
	}
}

type PrintLedgerRequest struct {
	Title string `json:"title" binding:"required"`
	Logo  string `json:"logo"`

	// Exactly one of TableBody (pre-built fragment, trusted verbatim) or Rows
	// (typed amounts, formatted by BuildLedgerRows) should be set.
	TableBody string             `json:"table_body"`
	Rows      []LedgerRowPayload `json:"rows"`
}

type LedgerRowPayload struct {
	Name string `json:"name" binding:"required"`

	Base    int64 `json:"base"`
	Meal    int64 `json:"meal"`
	Vehicle int64 `json:"vehicle"`
	Extra   int64 `json:"extra"`
	Bonus   int64 `json:"bonus"`

	Pension    int64 `json:"pension"`
	Health     int64 `json:"health"`
	Care       int64 `json:"care"`
	Employment int64 `json:"employment"`
	IncomeTax  int64 `json:"income_tax"`
	LocalTax   int64 `json:"local_tax"`
	OtherDed   int64 `json:"other_deduction"`
}

func (r PrintLedgerRequest) toRecord() (LedgerRecord, error) {
	body := template.HTML(r.TableBody)

	if r.TableBody == "" && len(r.Rows) > 0 {
		rows := make([]LedgerRow, len(r.Rows))
		for i, row := range r.Rows {
			rows[i] = LedgerRow(row)
		}

		built, err := BuildLedgerRows(rows)
		if err != nil {
			return LedgerRecord{}, err
		}
		body = built
	}

	return LedgerRecord{
		Title:     r.Title,
		Logo:      r.Logo,
		TableBody: body,
	}, nil
}
