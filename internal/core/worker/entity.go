package worker

import "time"

// CollectionName は社員レコードを保存するコレクション名です。
const CollectionName = "remoteWorkers"

// Worker はリモート社員 1 名分のオンボーディング状況を表すエンティティです。
// ID が空のレコードはまだ永続化されていません。
type Worker struct {
	ID           string
	Name         string
	Address      string
	Location     string
	PhoneNumber  string
	EmailAddress string
	JobTitle     string
	Department   string
	Manager      string
	StartDate    string
	Checklist    Checklist
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Checklist は互いに独立した 9 つのオンボーディング項目です。
type Checklist struct {
	SecurityIDReceived                 bool
	PCMeetsMinimumSpecifications       bool
	InternetMeetsMinimumSpecifications bool
	NDASigned                          bool
	BankingDetailsReceived             bool
	VPNAccessGranted                   bool
	EquipmentShipped                   bool
	WelcomeKitSent                     bool
	HRDocumentsSigned                  bool
}

// ChecklistItem は表示用のチェック項目です。
type ChecklistItem struct {
	Key   string
	Label string
	Done  bool
}

// Checklist item keys as stored in the remoteWorkers collection.
const (
	FieldSecurityIDReceived                 = "securityIdReceived"
	FieldPCMeetsMinimumSpecifications       = "pcMeetsMinimumSpecifications"
	FieldInternetMeetsMinimumSpecifications = "internetMeetsMinimumSpecifications"
	FieldNDASigned                          = "ndaSigned"
	FieldBankingDetailsReceived             = "bankingDetailsReceived"
	FieldVPNAccessGranted                   = "vpnAccessGranted"
	FieldEquipmentShipped                   = "equipmentShipped"
	FieldWelcomeKitSent                     = "welcomeKitSent"
	FieldHRDocumentsSigned                  = "hrDocumentsSigned"
)

// Items はカード表示と同じ順序でチェック項目を返します。
func (c Checklist) Items() []ChecklistItem {
	return []ChecklistItem{
		{Key: FieldSecurityIDReceived, Label: "Security ID", Done: c.SecurityIDReceived},
		{Key: FieldPCMeetsMinimumSpecifications, Label: "PC Specs", Done: c.PCMeetsMinimumSpecifications},
		{Key: FieldInternetMeetsMinimumSpecifications, Label: "Internet Specs", Done: c.InternetMeetsMinimumSpecifications},
		{Key: FieldNDASigned, Label: "NDA Signed", Done: c.NDASigned},
		{Key: FieldBankingDetailsReceived, Label: "Banking Details", Done: c.BankingDetailsReceived},
		{Key: FieldVPNAccessGranted, Label: "VPN Access", Done: c.VPNAccessGranted},
		{Key: FieldEquipmentShipped, Label: "Equipment Shipped", Done: c.EquipmentShipped},
		{Key: FieldWelcomeKitSent, Label: "Welcome Kit Sent", Done: c.WelcomeKitSent},
		{Key: FieldHRDocumentsSigned, Label: "HR Docs Signed", Done: c.HRDocumentsSigned},
	}
}

// NewEmpty は全項目が未完了の新規レコードを返します。
func NewEmpty() *Worker {
	return &Worker{}
}

// Persisted はレコードがストアに保存済みかを返します。
func (w *Worker) Persisted() bool {
	return w != nil && w.ID != ""
}

// Clone はレコードのコピーを返します。
func (w *Worker) Clone() *Worker {
	if w == nil {
		return nil
	}
	clone := *w
	return &clone
}
