package analysis

import "InterviewScanner/internal/domain"

// Built-in dictionaries used when a group has no overrides. Keyword lists are
// tuned for case-worker notes about foreign workers in Japan.

// DefaultCategoryDict maps the seven categories to their trigger keywords.
func DefaultCategoryDict() domain.CategoryDict {
	return domain.CategoryDict{
		domain.CategoryProcedure: {
			"ビザ", "在留資格", "在留カード", "手続き", "申請", "更新",
			"役所", "市役所", "年金", "保険", "税金", "契約", "書類",
		},
		domain.CategoryRelationship: {
			"人間関係", "上司", "同僚", "いじめ", "嫌がらせ", "ハラスメント",
			"パワハラ", "セクハラ", "孤立", "けんか", "差別", "無視",
		},
		domain.CategoryWork: {
			"仕事", "残業", "給料", "賃金", "シフト", "勤務", "作業",
			"業務", "職場", "労働", "休憩", "有給", "夜勤",
		},
		domain.CategoryHealth: {
			"体調", "病気", "病院", "けが", "怪我", "痛い", "頭痛", "腹痛",
			"発熱", "メンタル", "眠れない", "通院", "薬", "ストレス", "疲労",
		},
		domain.CategoryLife: {
			"住居", "寮", "アパート", "家賃", "生活", "買い物", "食事",
			"銀行", "口座", "携帯", "引っ越し", "ゴミ", "光熱費",
		},
		domain.CategoryLanguageCulture: {
			"日本語", "言葉", "会話", "通訳", "翻訳", "文化", "習慣",
			"宗教", "食文化", "勉強", "漢字",
		},
		domain.CategoryOther: {},
	}
}

// DefaultSentimentDict holds the polarity, negation, and intensifier lists.
func DefaultSentimentDict() domain.SentimentDict {
	return domain.SentimentDict{
		Positive: []string{
			"解決", "良好", "改善", "安心", "理解", "協力", "感謝", "順調",
			"できた", "対応済み", "楽しい", "嬉しい", "元気", "前向き", "助かる",
		},
		Negative: []string{
			"不安", "不満", "困難", "未解決", "悪い", "痛い", "辛い", "つらい",
			"辞めたい", "トラブル", "ミス", "苦情", "分からない", "怖い",
			"疲れ", "孤独", "ストレス", "心配", "眠れない", "いじめ", "泣",
		},
		Negation: []string{
			"ない", "ません", "ず", "なし", "無い", "なかった",
		},
		Intensifier: []string{
			"とても", "非常に", "かなり", "すごく", "本当に", "極めて",
		},
	}
}

// positiveNegations are lexically negative-looking idioms that actually mean
// "no problem"; matched before generic negation handling.
var positiveNegations = []string{"問題ない", "大丈夫", "心配ない", "不安ない"}

// unresolvedExpressions signal a case that keeps dragging on; consumed by the
// fifth risk factor.
var unresolvedExpressions = []string{
	"まだ解決していない", "未解決", "変わらない", "改善していない",
	"引き続き", "様子見", "再発", "依然として", "保留",
}

// UnresolvedExpressions exposes the idiom list to the risk scorer.
func UnresolvedExpressions() []string { return unresolvedExpressions }

// stopwords drop high-frequency note boilerplate and function-like words from
// keyword ranking.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"する", "いる", "ある", "なる", "れる", "られる", "こと", "もの",
		"ため", "よう", "さん", "ちゃん", "くん", "これ", "それ", "あれ",
		"ここ", "そこ", "できる", "やる", "思う", "言う", "行う", "場合",
		"とき", "今回", "本日", "今日", "面談", "相談", "確認", "対応",
		"実施", "報告", "本人", "様子",
	} {
		stopwords[w] = struct{}{}
	}
}

// DefaultThresholds returns the built-in tier cut points, urgency keyword
// lists, and risk factor weights.
func DefaultThresholds() domain.ThresholdSettings {
	return domain.ThresholdSettings{
		RiskTier: domain.RiskTierThresholds{Yellow: 40, Red: 70},
		Urgency: domain.UrgencyKeywords{
			HighKeywords: []string{
				"辞めたい", "退職したい", "死にたい", "消えたい", "暴力",
				"殴られ", "ハラスメント", "パワハラ", "セクハラ",
				"無断欠勤", "失踪", "倒れ", "自殺",
			},
			MediumKeywords: []string{
				"不安", "心配", "困っている", "相談したい", "体調不良",
				"眠れない", "トラブル", "苦情",
			},
		},
		RiskWeights: domain.RiskWeights{
			VolumeIncrease:        1.0,
			SentimentDecline:      1.5,
			HighRiskCategory:      1.2,
			OpenCases:             1.0,
			UnresolvedExpressions: 0.8,
		},
	}
}

// DefaultSettings bundles all built-in dictionaries for groups without
// overrides.
func DefaultSettings() domain.AppSettings {
	return domain.AppSettings{
		Dict:          DefaultCategoryDict(),
		SentimentDict: DefaultSentimentDict(),
		Thresholds:    DefaultThresholds(),
		Notifications: domain.NotificationSettings{
			Enabled:              false,
			TriggerOnRed:         true,
			TriggerOnHighUrgency: true,
		},
	}
}

// CategoryLabel returns the Japanese display label for a category.
func CategoryLabel(category domain.CategoryKey) string {
	switch category {
	case domain.CategoryProcedure:
		return "手続き・制度"
	case domain.CategoryRelationship:
		return "人間関係"
	case domain.CategoryWork:
		return "仕事・労働"
	case domain.CategoryHealth:
		return "健康・メンタル"
	case domain.CategoryLife:
		return "生活・住居"
	case domain.CategoryLanguageCulture:
		return "言語・文化"
	case domain.CategoryOther:
		return "その他"
	}
	return string(category)
}
