package worker

import "time"

// Stored field names of the remoteWorkers collection.
const (
	FieldName         = "name"
	FieldAddress      = "address"
	FieldLocation     = "location"
	FieldPhoneNumber  = "phoneNumber"
	FieldEmailAddress = "emailAddress"
	FieldJobTitle     = "jobTitle"
	FieldDepartment   = "department"
	FieldManager      = "manager"
	FieldStartDate    = "startDate"
)

// Patch はマージ更新の内容です。nil のフィールドはストア上で変更されません。
type Patch struct {
	Name         *string
	Address      *string
	Location     *string
	PhoneNumber  *string
	EmailAddress *string
	JobTitle     *string
	Department   *string
	Manager      *string
	StartDate    *string

	SecurityIDReceived                 *bool
	PCMeetsMinimumSpecifications       *bool
	InternetMeetsMinimumSpecifications *bool
	NDASigned                          *bool
	BankingDetailsReceived             *bool
	VPNAccessGranted                   *bool
	EquipmentShipped                   *bool
	WelcomeKitSent                     *bool
	HRDocumentsSigned                  *bool

	UpdatedAt time.Time
}

// PatchFromWorker は ID を除くすべてのフィールドを含むパッチを作成します。
func PatchFromWorker(w *Worker) Patch {
	c := w.Checklist
	return Patch{
		Name:         strPtr(w.Name),
		Address:      strPtr(w.Address),
		Location:     strPtr(w.Location),
		PhoneNumber:  strPtr(w.PhoneNumber),
		EmailAddress: strPtr(w.EmailAddress),
		JobTitle:     strPtr(w.JobTitle),
		Department:   strPtr(w.Department),
		Manager:      strPtr(w.Manager),
		StartDate:    strPtr(w.StartDate),

		SecurityIDReceived:                 boolPtr(c.SecurityIDReceived),
		PCMeetsMinimumSpecifications:       boolPtr(c.PCMeetsMinimumSpecifications),
		InternetMeetsMinimumSpecifications: boolPtr(c.InternetMeetsMinimumSpecifications),
		NDASigned:                          boolPtr(c.NDASigned),
		BankingDetailsReceived:             boolPtr(c.BankingDetailsReceived),
		VPNAccessGranted:                   boolPtr(c.VPNAccessGranted),
		EquipmentShipped:                   boolPtr(c.EquipmentShipped),
		WelcomeKitSent:                     boolPtr(c.WelcomeKitSent),
		HRDocumentsSigned:                  boolPtr(c.HRDocumentsSigned),

		UpdatedAt: w.UpdatedAt,
	}
}

// Fields はパッチに含まれるフィールドを保存時の名前で返します。
// 順序は固定されており、アダプターはこの順で SQL やドキュメントを組み立てます。
func (p Patch) Fields() []PatchField {
	fields := make([]PatchField, 0, 18)
	appendStr := func(name string, v *string) {
		if v != nil {
			fields = append(fields, PatchField{Name: name, Value: *v})
		}
	}
	appendBool := func(name string, v *bool) {
		if v != nil {
			fields = append(fields, PatchField{Name: name, Value: *v})
		}
	}

	appendStr(FieldName, p.Name)
	appendStr(FieldAddress, p.Address)
	appendStr(FieldLocation, p.Location)
	appendStr(FieldPhoneNumber, p.PhoneNumber)
	appendStr(FieldEmailAddress, p.EmailAddress)
	appendStr(FieldJobTitle, p.JobTitle)
	appendStr(FieldDepartment, p.Department)
	appendStr(FieldManager, p.Manager)
	appendStr(FieldStartDate, p.StartDate)

	appendBool(FieldSecurityIDReceived, p.SecurityIDReceived)
	appendBool(FieldPCMeetsMinimumSpecifications, p.PCMeetsMinimumSpecifications)
	appendBool(FieldInternetMeetsMinimumSpecifications, p.InternetMeetsMinimumSpecifications)
	appendBool(FieldNDASigned, p.NDASigned)
	appendBool(FieldBankingDetailsReceived, p.BankingDetailsReceived)
	appendBool(FieldVPNAccessGranted, p.VPNAccessGranted)
	appendBool(FieldEquipmentShipped, p.EquipmentShipped)
	appendBool(FieldWelcomeKitSent, p.WelcomeKitSent)
	appendBool(FieldHRDocumentsSigned, p.HRDocumentsSigned)

	return fields
}

// Empty はパッチが何も更新しない場合に true を返します。
func (p Patch) Empty() bool {
	return len(p.Fields()) == 0
}

// Apply はパッチを w に適用します。インメモリ実装とテストで利用します。
func (p Patch) Apply(w *Worker) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}

	setStr(&w.Name, p.Name)
	setStr(&w.Address, p.Address)
	setStr(&w.Location, p.Location)
	setStr(&w.PhoneNumber, p.PhoneNumber)
	setStr(&w.EmailAddress, p.EmailAddress)
	setStr(&w.JobTitle, p.JobTitle)
	setStr(&w.Department, p.Department)
	setStr(&w.Manager, p.Manager)
	setStr(&w.StartDate, p.StartDate)

	c := &w.Checklist
	setBool(&c.SecurityIDReceived, p.SecurityIDReceived)
	setBool(&c.PCMeetsMinimumSpecifications, p.PCMeetsMinimumSpecifications)
	setBool(&c.InternetMeetsMinimumSpecifications, p.InternetMeetsMinimumSpecifications)
	setBool(&c.NDASigned, p.NDASigned)
	setBool(&c.BankingDetailsReceived, p.BankingDetailsReceived)
	setBool(&c.VPNAccessGranted, p.VPNAccessGranted)
	setBool(&c.EquipmentShipped, p.EquipmentShipped)
	setBool(&c.WelcomeKitSent, p.WelcomeKitSent)
	setBool(&c.HRDocumentsSigned, p.HRDocumentsSigned)

	if !p.UpdatedAt.IsZero() {
		w.UpdatedAt = p.UpdatedAt
	}
}

// PatchField は保存時の名前と値の組です。
type PatchField struct {
	Name  string
	Value any
}

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
