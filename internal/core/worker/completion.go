package worker

import (
	"fmt"
	"math"
)

// CompletionStatus はカードに表示するバッジの値です。
type CompletionStatus string

const (
	StatusComplete   CompletionStatus = "Complete"
	StatusIncomplete CompletionStatus = "Incomplete"
)

// IsOnboardingComplete は 9 項目すべてが完了している場合に true を返します。
func IsOnboardingComplete(w *Worker) bool {
	if w == nil {
		return false
	}
	c := w.Checklist
	return c.SecurityIDReceived &&
		c.PCMeetsMinimumSpecifications &&
		c.InternetMeetsMinimumSpecifications &&
		c.NDASigned &&
		c.BankingDetailsReceived &&
		c.VPNAccessGranted &&
		c.EquipmentShipped &&
		c.WelcomeKitSent &&
		c.HRDocumentsSigned
}

// Status はレコードの完了状態を返します。
func Status(w *Worker) CompletionStatus {
	if IsOnboardingComplete(w) {
		return StatusComplete
	}
	return StatusIncomplete
}

// Summary はダッシュボードの集計値です。
type Summary struct {
	Total      int
	Completed  int
	Incomplete int
	// Progress is 0..100 and 0 for an empty set.
	Progress float64
}

// Summarize はレコード一覧から集計値を計算します。
func Summarize(workers []*Worker) Summary {
	total := len(workers)
	completed := 0
	for _, w := range workers {
		if IsOnboardingComplete(w) {
			completed++
		}
	}

	var progress float64
	if total > 0 {
		progress = float64(completed) / float64(total) * 100
	}

	return Summary{
		Total:      total,
		Completed:  completed,
		Incomplete: total - completed,
		Progress:   progress,
	}
}

// RoundedProgress は小数点以下を丸めた進捗率を返します。
func (s Summary) RoundedProgress() int {
	return int(math.Round(s.Progress))
}

// ProgressLabel は "67% Complete" 形式の表示文字列を返します。
func (s Summary) ProgressLabel() string {
	return fmt.Sprintf("%d%% Complete", s.RoundedProgress())
}
