package models

// Role defines the user role type
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ExperienceStatus is the moderation state of a submitted experience
type ExperienceStatus string

const (
	StatusPending  ExperienceStatus = "pending"
	StatusApproved ExperienceStatus = "approved"
	StatusRejected ExperienceStatus = "rejected"
)

// ExperienceType is the kind of engagement the experience describes
type ExperienceType string

const (
	TypeInternship     ExperienceType = "Internship"
	TypeFullTime       ExperienceType = "Full-Time"
	TypeApprenticeship ExperienceType = "Apprenticeship"
)

// ValidExperienceType reports whether t is one of the accepted experience types.
func ValidExperienceType(t string) bool {
	switch ExperienceType(t) {
	case TypeInternship, TypeFullTime, TypeApprenticeship:
		return true
	}
	return false
}

// ExperienceResult is the outcome of the interview process
type ExperienceResult string

const (
	ResultSelected    ExperienceResult = "Selected"
	ResultNotSelected ExperienceResult = "Not Selected"
	ResultPending     ExperienceResult = "Pending"
)

// ValidExperienceResult reports whether r is one of the accepted results.
func ValidExperienceResult(r string) bool {
	switch ExperienceResult(r) {
	case ResultSelected, ResultNotSelected, ResultPending:
		return true
	}
	return false
}

// MessageType is the payload kind of a chat message
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)
