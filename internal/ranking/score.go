package ranking

// BreakdownEntry 是最终得分中单个指标的完整账目。
type BreakdownEntry struct {
	Metric       string  `json:"metric"`
	Raw          float64 `json:"raw"`
	Normalized   float64 `json:"normalized"`
	Weight       float64 `json:"weight"`
	NormWeight   float64 `json:"norm_weight"`
	Contribution float64 `json:"contribution"`
	IsFocus      bool    `json:"is_focus"`
}

// ScoreBreakdown 是一个角色的总分和逐指标明细。
// Entries 的顺序与职业规则表一致，便于前端稳定展示。
type ScoreBreakdown struct {
	FinalScore float64          `json:"final_score"`
	Entries    []BreakdownEntry `json:"entries"`
}

// scoreCharacter 聚合一个角色的全部指标。
// 总分是归一化百分比按归一化权重的加权和，天然落在[0,100]。
func scoreCharacter(table *ClassRuleTable, in *characterInput, maxima classMaxima) *ScoreBreakdown {
	breakdown := &ScoreBreakdown{
		Entries: make([]BreakdownEntry, 0, len(table.Metrics)),
	}

	for i := range table.Metrics {
		m := &table.Metrics[i]
		raw := rawValue(table, m, in)
		normalized := normalizedPercent(table, m, in, raw, maxima)
		contribution := normalized * m.NormWeight

		breakdown.Entries = append(breakdown.Entries, BreakdownEntry{
			Metric:       m.Name,
			Raw:          raw,
			Normalized:   normalized,
			Weight:       m.Weight,
			NormWeight:   m.NormWeight,
			Contribution: contribution,
			IsFocus:      m.IsFocus,
		})
		breakdown.FinalScore += contribution
	}

	breakdown.FinalScore = clampPercent(breakdown.FinalScore)
	return breakdown
}
