package handler

import (
	"fmt"
	"time"

	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	keyID        = "id"
	keyStatus    = "status"
	keyCreatedAt = "createdAt"
	keyUpdatedAt = "updatedAt"
)

// readOnlyKeys はクライアントが取得結果をそのまま送り返した場合に無視するキーです。
var readOnlyKeys = map[string]bool{
	keyStatus:    true,
	keyCreatedAt: true,
	keyUpdatedAt: true,
}

func workerToMap(w *worker.Worker) map[string]any {
	c := w.Checklist
	m := map[string]any{
		keyID:                    w.ID,
		worker.FieldName:         w.Name,
		worker.FieldAddress:      w.Address,
		worker.FieldLocation:     w.Location,
		worker.FieldPhoneNumber:  w.PhoneNumber,
		worker.FieldEmailAddress: w.EmailAddress,
		worker.FieldJobTitle:     w.JobTitle,
		worker.FieldDepartment:   w.Department,
		worker.FieldManager:      w.Manager,
		worker.FieldStartDate:    w.StartDate,
		keyStatus:                string(worker.Status(w)),

		worker.FieldSecurityIDReceived:                 c.SecurityIDReceived,
		worker.FieldPCMeetsMinimumSpecifications:       c.PCMeetsMinimumSpecifications,
		worker.FieldInternetMeetsMinimumSpecifications: c.InternetMeetsMinimumSpecifications,
		worker.FieldNDASigned:                          c.NDASigned,
		worker.FieldBankingDetailsReceived:             c.BankingDetailsReceived,
		worker.FieldVPNAccessGranted:                   c.VPNAccessGranted,
		worker.FieldEquipmentShipped:                   c.EquipmentShipped,
		worker.FieldWelcomeKitSent:                     c.WelcomeKitSent,
		worker.FieldHRDocumentsSigned:                  c.HRDocumentsSigned,
	}
	if !w.CreatedAt.IsZero() {
		m[keyCreatedAt] = w.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !w.UpdatedAt.IsZero() {
		m[keyUpdatedAt] = w.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return m
}

func summaryToMap(s worker.Summary) map[string]any {
	return map[string]any{
		"total":         s.Total,
		"completed":     s.Completed,
		"incomplete":    s.Incomplete,
		"progress":      s.RoundedProgress(),
		"progressLabel": s.ProgressLabel(),
	}
}

func toWorkerStruct(w *worker.Worker) (*structpb.Struct, error) {
	return structpb.NewStruct(workerToMap(w))
}

func toCollectionStruct(workers []*worker.Worker, summary worker.Summary) (*structpb.Struct, error) {
	items := make([]any, 0, len(workers))
	for _, w := range workers {
		items = append(items, workerToMap(w))
	}
	return structpb.NewStruct(map[string]any{
		"workers": items,
		"summary": summaryToMap(summary),
	})
}

// fromStruct はリクエストを ID とパッチに変換します。
// 含まれていないキーはパッチにも含まれないため、ストア上の値は変更されません。
func fromStruct(s *structpb.Struct) (string, worker.Patch, error) {
	var (
		id    string
		patch worker.Patch
	)

	for key, v := range s.GetFields() {
		if readOnlyKeys[key] {
			continue
		}
		if key == keyID {
			str, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return "", worker.Patch{}, fmt.Errorf("%w: %s must be a string", errInvalidRequest, key)
			}
			id = str.StringValue
			continue
		}

		if target := stringTarget(&patch, key); target != nil {
			str, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return "", worker.Patch{}, fmt.Errorf("%w: %s must be a string", errInvalidRequest, key)
			}
			value := str.StringValue
			*target = &value
			continue
		}

		if target := boolTarget(&patch, key); target != nil {
			b, ok := v.GetKind().(*structpb.Value_BoolValue)
			if !ok {
				return "", worker.Patch{}, fmt.Errorf("%w: %s must be a boolean", errInvalidRequest, key)
			}
			value := b.BoolValue
			*target = &value
			continue
		}

		return "", worker.Patch{}, fmt.Errorf("%w: unknown field %q", errInvalidRequest, key)
	}

	return id, patch, nil
}

func stringTarget(p *worker.Patch, key string) **string {
	switch key {
	case worker.FieldName:
		return &p.Name
	case worker.FieldAddress:
		return &p.Address
	case worker.FieldLocation:
		return &p.Location
	case worker.FieldPhoneNumber:
		return &p.PhoneNumber
	case worker.FieldEmailAddress:
		return &p.EmailAddress
	case worker.FieldJobTitle:
		return &p.JobTitle
	case worker.FieldDepartment:
		return &p.Department
	case worker.FieldManager:
		return &p.Manager
	case worker.FieldStartDate:
		return &p.StartDate
	}
	return nil
}

func boolTarget(p *worker.Patch, key string) **bool {
	switch key {
	case worker.FieldSecurityIDReceived:
		return &p.SecurityIDReceived
	case worker.FieldPCMeetsMinimumSpecifications:
		return &p.PCMeetsMinimumSpecifications
	case worker.FieldInternetMeetsMinimumSpecifications:
		return &p.InternetMeetsMinimumSpecifications
	case worker.FieldNDASigned:
		return &p.NDASigned
	case worker.FieldBankingDetailsReceived:
		return &p.BankingDetailsReceived
	case worker.FieldVPNAccessGranted:
		return &p.VPNAccessGranted
	case worker.FieldEquipmentShipped:
		return &p.EquipmentShipped
	case worker.FieldWelcomeKitSent:
		return &p.WelcomeKitSent
	case worker.FieldHRDocumentsSigned:
		return &p.HRDocumentsSigned
	}
	return nil
}
