package models

type IssuePriority string

const (
	IssuePriorityHigh   IssuePriority = "HIGH"
	IssuePriorityMedium IssuePriority = "MEDIUM"
	IssuePriorityLow    IssuePriority = "LOW"
)

func IsValidIssuePriority(p IssuePriority) bool {
	switch p {
	case IssuePriorityHigh, IssuePriorityMedium, IssuePriorityLow:
		return true
	}
	return false
}

type IssueCategory string

const (
	IssueCategoryPatrol      IssueCategory = "PATROL"
	IssueCategoryIssue       IssueCategory = "ISSUE"
	IssueCategoryAlarmReview IssueCategory = "ALARM_REVIEW"
	IssueCategoryFireSafety  IssueCategory = "FIRE_SAFETY"
)

func IsValidIssueCategory(c IssueCategory) bool {
	switch c {
	case IssueCategoryPatrol, IssueCategoryIssue, IssueCategoryAlarmReview, IssueCategoryFireSafety:
		return true
	}
	return false
}

type IssueStatus string

const (
	IssueStatusOpen IssueStatus = "OPEN"
	IssueStatusDone IssueStatus = "DONE"
)

type LogAction string

const (
	LogActionCreate  LogAction = "CREATE"
	LogActionAssign  LogAction = "ASSIGN"
	LogActionProcess LogAction = "PROCESS"
	LogActionClose   LogAction = "CLOSE"
)

// IssueLog is a single audit-trail entry. Entries are immutable once
// appended and the first entry of every issue is always CREATE.
type IssueLog struct {
	ID        string    `json:"id" db:"id"`
	Action    LogAction `json:"action" db:"action"`
	Operator  string    `json:"operator" db:"operator"`
	Timestamp string    `json:"timestamp" db:"timestamp"`
	Content   string    `json:"content" db:"content"`
}

// Issue is a work order: an actionable task created to dispose of an
// alarm or an independently reported problem. If RelatedAlarmID is set,
// the referenced alarm's RelatedIssueID points back at this issue.
type Issue struct {
	ID             string        `json:"id" db:"id"`
	Title          string        `json:"title" db:"title"`
	Priority       IssuePriority `json:"priority" db:"priority"`
	DueDate        string        `json:"due_date" db:"due_date"`
	Category       IssueCategory `json:"category" db:"category"`
	Status         IssueStatus   `json:"status" db:"status"`
	Description    string        `json:"description" db:"description"`
	Initiator      string        `json:"initiator" db:"initiator"`
	Assignee       string        `json:"assignee" db:"assignee"`
	RelatedAlarmID *string       `json:"related_alarm_id,omitempty" db:"related_alarm_id"`
	CreatedAt      string        `json:"created_at" db:"created_at"`
	Logs           []IssueLog    `json:"logs"`
}

type IssueAction string

const (
	IssueActionComplete IssueAction = "COMPLETE"
	IssueActionComment  IssueAction = "COMMENT"
)

func IsValidIssueAction(a IssueAction) bool {
	return a == IssueActionComplete || a == IssueActionComment
}
