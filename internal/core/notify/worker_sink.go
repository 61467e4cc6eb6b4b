package notify

import (
	"context"
	"fmt"

	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
)

// WorkerSink は社員レコードの書き込み結果を通知に変換します。
type WorkerSink struct {
	center *Center
}

// NewWorkerSink は WorkerSink を生成します。center が nil の場合は Default を使います。
func NewWorkerSink(center *Center) *WorkerSink {
	if center == nil {
		center = Default()
	}
	return &WorkerSink{center: center}
}

// WorkerChanged は worker.EventSink を実装します。
func (s *WorkerSink) WorkerChanged(_ context.Context, ev worker.Event) {
	s.center.Toast(ToastForEvent(ev))
}

// ToastForEvent は書き込みイベントに対応する通知内容を返します。
func ToastForEvent(ev worker.Event) Toast {
	name := ev.Name
	if name == "" {
		name = "Worker " + ev.WorkerID
	}

	switch ev.Kind {
	case worker.EventCreated:
		return Toast{Title: "Success!", Description: fmt.Sprintf("%s has been added.", name)}
	case worker.EventUpdated:
		return Toast{Title: "Success!", Description: fmt.Sprintf("%s has been updated.", name)}
	case worker.EventDeleted:
		return Toast{Title: "Worker Deleted", Description: fmt.Sprintf("%s has been removed from the dashboard.", name)}
	default:
		title := "Save Failed"
		if ev.Op == worker.EventDeleted {
			title = "Delete Failed"
		}
		return Toast{
			Title:       title,
			Description: fmt.Sprintf("%s could not be written: %v", name, ev.Err),
			Variant:     VariantDestructive,
		}
	}
}
