// Package services holds the business rules sitting between the repositories
// and whatever surface drives them. Each service declares the repository
// interfaces it needs, so tests can swap in fakes without touching the
// database layer.
//
// Services defined in this package:
//   - UserService: account registration, activation and status changes
//   - DepartmentService / SchoolService: reference data management
//   - EncadreurService: supervisor profiles and capacity settings
//   - InternService: intern profiles, supervisor and project assignment
//   - ProjectService / TaskService: work tracking
//   - EvaluationService: evaluations and the intern's current standing
//   - DocumentService: file attachments on interns, projects and tasks
//   - NotificationService / ActivityService: messaging and the audit log
//   - StatsService: per-department rollups
package services
