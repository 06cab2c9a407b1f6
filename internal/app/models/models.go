package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin     RoleType = "ADMIN"
	RoleEncadreur RoleType = "ENCADREUR"
	RoleStagiaire RoleType = "STAGIAIRE"
)

// Valid reports whether the role is one of the closed set.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleEncadreur, RoleStagiaire:
		return true
	}
	return false
}

// AccountStatus defines the user account lifecycle state
type AccountStatus string

const (
	AccountPending   AccountStatus = "PENDING"
	AccountActive    AccountStatus = "ACTIVE"
	AccountInactive  AccountStatus = "INACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

// Valid reports whether the status is one of the closed set.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountPending, AccountActive, AccountInactive, AccountSuspended:
		return true
	}
	return false
}

// InternStatus defines the internship lifecycle state
type InternStatus string

const (
	InternPending   InternStatus = "PENDING"
	InternActive    InternStatus = "ACTIVE"
	InternCompleted InternStatus = "COMPLETED"
	InternCancelled InternStatus = "CANCELLED"
	InternSuspended InternStatus = "SUSPENDED"
)

// Valid reports whether the status is one of the closed set.
func (s InternStatus) Valid() bool {
	switch s {
	case InternPending, InternActive, InternCompleted, InternCancelled, InternSuspended:
		return true
	}
	return false
}

// AcademicLevel defines the intern's academic level
type AcademicLevel string

const (
	LevelLicence1  AcademicLevel = "LICENCE_1"
	LevelLicence2  AcademicLevel = "LICENCE_2"
	LevelLicence3  AcademicLevel = "LICENCE_3"
	LevelMaster1   AcademicLevel = "MASTER_1"
	LevelMaster2   AcademicLevel = "MASTER_2"
	LevelIngenieur AcademicLevel = "INGENIEUR"
	LevelDoctorat  AcademicLevel = "DOCTORAT"
)

// Valid reports whether the level is one of the closed set.
func (l AcademicLevel) Valid() bool {
	switch l {
	case LevelLicence1, LevelLicence2, LevelLicence3,
		LevelMaster1, LevelMaster2, LevelIngenieur, LevelDoctorat:
		return true
	}
	return false
}

// ProjectStatus defines the project lifecycle state
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "PLANNING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

// Valid reports whether the status is one of the closed set.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

// TaskStatus defines the task lifecycle state
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskReview     TaskStatus = "REVIEW"
	TaskDone       TaskStatus = "DONE"
	TaskCancelled  TaskStatus = "CANCELLED"
)

// Valid reports whether the status is one of the closed set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskDone, TaskCancelled:
		return true
	}
	return false
}

// TaskPriority defines the task priority
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// Valid reports whether the priority is one of the closed set.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// DocumentKind defines the document category
type DocumentKind string

const (
	DocConvention  DocumentKind = "CONVENTION"
	DocRapport     DocumentKind = "RAPPORT"
	DocAttestation DocumentKind = "ATTESTATION"
	DocCV          DocumentKind = "CV"
	DocAutre       DocumentKind = "AUTRE"
)

// Valid reports whether the kind is one of the closed set.
func (k DocumentKind) Valid() bool {
	switch k {
	case DocConvention, DocRapport, DocAttestation, DocCV, DocAutre:
		return true
	}
	return false
}

// NotificationType defines the notification category
type NotificationType string

const (
	NotifAssignment NotificationType = "ASSIGNMENT"
	NotifEvaluation NotificationType = "EVALUATION"
	NotifTask       NotificationType = "TASK"
	NotifDocument   NotificationType = "DOCUMENT"
	NotifSystem     NotificationType = "SYSTEM"
)

// Valid reports whether the type is one of the closed set.
func (t NotificationType) Valid() bool {
	switch t {
	case NotifAssignment, NotifEvaluation, NotifTask, NotifDocument, NotifSystem:
		return true
	}
	return false
}

// ActionKind labels activity history entries
type ActionKind string

const (
	ActionCreate   ActionKind = "CREATE"
	ActionUpdate   ActionKind = "UPDATE"
	ActionDelete   ActionKind = "DELETE"
	ActionAssign   ActionKind = "ASSIGN"
	ActionUnassign ActionKind = "UNASSIGN"
	ActionEvaluate ActionKind = "EVALUATE"
	ActionUpload   ActionKind = "UPLOAD"
)
