package models

const (
	InsightSeverityInfo    = "info"
	InsightSeverityWarning = "warning"
	InsightSeverityAlert   = "alert"
	InsightSeveritySuccess = "success"
)

// AiInsight rows are append-only from the application's perspective; the
// generator creates them and the user can only mark them read.
type AiInsight struct {
	BaseUUIDModel
	UserID   string  `gorm:"type:varchar(64);not null;index"       json:"userId"`
	User     *User   `gorm:"foreignKey:UserID"                     json:"-"`
	Content  string  `gorm:"type:text;not null"                    json:"content"`
	Category *string `gorm:"type:varchar(128)"                     json:"category"`
	Severity string  `gorm:"type:varchar(20);not null;default:info" json:"severity"`
	IsRead   bool    `gorm:"not null;default:false"                json:"isRead"`
}

// CreateAiInsightRequest is the insert shape; IsRead is server-owned.
type CreateAiInsightRequest struct {
	UserID   string  `json:"userId"`
	Content  string  `json:"content"`
	Category *string `json:"category"`
	Severity string  `json:"severity"`
}

func ValidInsightSeverity(severity string) bool {
	switch severity {
	case InsightSeverityInfo, InsightSeverityWarning,
		InsightSeverityAlert, InsightSeveritySuccess:
		return true
	}
	return false
}
