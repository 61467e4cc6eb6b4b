package mongodb

import (
	"time"

	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// workerDocument は remoteWorkers コレクションのドキュメント形状です。
type workerDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Address      string             `bson:"address"`
	Location     string             `bson:"location"`
	PhoneNumber  string             `bson:"phoneNumber"`
	EmailAddress string             `bson:"emailAddress"`
	JobTitle     string             `bson:"jobTitle"`
	Department   string             `bson:"department"`
	Manager      string             `bson:"manager"`
	StartDate    string             `bson:"startDate"`

	SecurityIDReceived                 bool `bson:"securityIdReceived"`
	PCMeetsMinimumSpecifications       bool `bson:"pcMeetsMinimumSpecifications"`
	InternetMeetsMinimumSpecifications bool `bson:"internetMeetsMinimumSpecifications"`
	NDASigned                          bool `bson:"ndaSigned"`
	BankingDetailsReceived             bool `bson:"bankingDetailsReceived"`
	VPNAccessGranted                   bool `bson:"vpnAccessGranted"`
	EquipmentShipped                   bool `bson:"equipmentShipped"`
	WelcomeKitSent                     bool `bson:"welcomeKitSent"`
	HRDocumentsSigned                  bool `bson:"hrDocumentsSigned"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// WorkerIndexes は remoteWorkers コレクションに作成するインデックスです。
var WorkerIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("idx_createdAt_id"),
	},
	{
		Keys:    bson.D{{Key: "emailAddress", Value: 1}},
		Options: options.Index().SetName("idx_emailAddress"),
	},
}

func newWorkerDocument(id primitive.ObjectID, w *worker.Worker) workerDocument {
	c := w.Checklist
	return workerDocument{
		ID:           id,
		Name:         w.Name,
		Address:      w.Address,
		Location:     w.Location,
		PhoneNumber:  w.PhoneNumber,
		EmailAddress: w.EmailAddress,
		JobTitle:     w.JobTitle,
		Department:   w.Department,
		Manager:      w.Manager,
		StartDate:    w.StartDate,

		SecurityIDReceived:                 c.SecurityIDReceived,
		PCMeetsMinimumSpecifications:       c.PCMeetsMinimumSpecifications,
		InternetMeetsMinimumSpecifications: c.InternetMeetsMinimumSpecifications,
		NDASigned:                          c.NDASigned,
		BankingDetailsReceived:             c.BankingDetailsReceived,
		VPNAccessGranted:                   c.VPNAccessGranted,
		EquipmentShipped:                   c.EquipmentShipped,
		WelcomeKitSent:                     c.WelcomeKitSent,
		HRDocumentsSigned:                  c.HRDocumentsSigned,

		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func (d workerDocument) toEntity() *worker.Worker {
	return &worker.Worker{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Address:      d.Address,
		Location:     d.Location,
		PhoneNumber:  d.PhoneNumber,
		EmailAddress: d.EmailAddress,
		JobTitle:     d.JobTitle,
		Department:   d.Department,
		Manager:      d.Manager,
		StartDate:    d.StartDate,
		Checklist: worker.Checklist{
			SecurityIDReceived:                 d.SecurityIDReceived,
			PCMeetsMinimumSpecifications:       d.PCMeetsMinimumSpecifications,
			InternetMeetsMinimumSpecifications: d.InternetMeetsMinimumSpecifications,
			NDASigned:                          d.NDASigned,
			BankingDetailsReceived:             d.BankingDetailsReceived,
			VPNAccessGranted:                   d.VPNAccessGranted,
			EquipmentShipped:                   d.EquipmentShipped,
			WelcomeKitSent:                     d.WelcomeKitSent,
			HRDocumentsSigned:                  d.HRDocumentsSigned,
		},
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// setDocument は Patch を $set 用のドキュメントに変換します。
func setDocument(patch worker.Patch, updatedAt time.Time) bson.D {
	fields := patch.Fields()
	set := make(bson.D, 0, len(fields)+1)
	for _, f := range fields {
		set = append(set, bson.E{Key: f.Name, Value: f.Value})
	}
	return append(set, bson.E{Key: "updatedAt", Value: updatedAt})
}
