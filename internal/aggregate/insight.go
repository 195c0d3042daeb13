package aggregate

import (
	"fmt"
	"strings"

	"InterviewScanner/internal/analysis"
	"InterviewScanner/internal/domain"
)

// InsightData carries already-computed batch numbers into text generation;
// insight strings never introduce new figures.
type InsightData struct {
	TotalRecords     int
	TotalPersons     int
	AvgSentiment     float64
	RedAlertCount    int
	YellowAlertCount int
	TopCategory      domain.CategoryKey
	TopCategoryCount int
	HighUrgencyCount int
	OpenCaseCount    int
}

// GenerateGroupInsights renders Japanese narrative lines for a group report.
func GenerateGroupInsights(data InsightData) []string {
	insights := []string{
		fmt.Sprintf("今回のバッチでは%d名から計%d件の面談記録を分析しました。", data.TotalPersons, data.TotalRecords),
	}

	switch {
	case data.AvgSentiment < -0.3:
		insights = append(insights, fmt.Sprintf("⚠️ 全体の感情スコア平均は%.2fと低い水準にあります。個別フォローの検討を推奨します。", data.AvgSentiment))
	case data.AvgSentiment > 0.2:
		insights = append(insights, fmt.Sprintf("✅ 全体の感情スコア平均は%.2fと良好な状態です。", data.AvgSentiment))
	default:
		insights = append(insights, fmt.Sprintf("全体の感情スコア平均は%.2fで、中程度の水準です。", data.AvgSentiment))
	}

	if data.RedAlertCount > 0 {
		insights = append(insights, fmt.Sprintf("🔴 %d名が「赤信号（Red）」のリスクティアにあります。優先的な対応が必要です。", data.RedAlertCount))
	}
	if data.YellowAlertCount > 0 {
		insights = append(insights, fmt.Sprintf("🟡 %d名が「黄信号（Yellow）」のリスクティアにあります。経過観察を推奨します。", data.YellowAlertCount))
	}
	if data.TopCategory != "" && data.TopCategory != domain.CategoryOther {
		insights = append(insights, fmt.Sprintf("最も多い相談カテゴリは「%s」で%d件です。", analysis.CategoryLabel(data.TopCategory), data.TopCategoryCount))
	}
	if data.HighUrgencyCount > 0 {
		insights = append(insights, fmt.Sprintf("⚡ %d件が「緊急度：高」と判定されました。早急な確認を推奨します。", data.HighUrgencyCount))
	}
	if data.OpenCaseCount > 0 {
		insights = append(insights, fmt.Sprintf("📋 %d件の未解決ケースがあります。ケースボードでの確認・対応を推奨します。", data.OpenCaseCount))
	}

	return insights
}

// GeneratePersonInsight renders a one-line status for a person detail view.
func GeneratePersonInsight(name string, result domain.RiskResult, openCases int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sさん（リスクスコア: %d/100）", name, result.Score)

	switch result.Tier {
	case domain.TierRed:
		b.WriteString("は現在「赤信号」の状態です。早急な個別対応を検討してください。")
	case domain.TierYellow:
		b.WriteString("は現在「黄信号」の状態です。継続的な経過観察を推奨します。")
	default:
		b.WriteString("は現在安定した状態です。")
	}

	if openCases > 0 {
		fmt.Fprintf(&b, " %d件の未解決ケースがあります。", openCases)
	}

	return b.String()
}
