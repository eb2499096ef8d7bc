package entity

import "strings"

const (
	JobFullTime  = "Full-time"
	JobPartTime  = "Part-time"
	JobContract  = "Contract"
	JobFreelance = "Freelance"
)

var JobTypes = []string{JobFullTime, JobPartTime, JobContract, JobFreelance}

// CanonicalJobType returns the listed spelling of jobType, matched
// case-insensitively.
func CanonicalJobType(jobType string) (string, bool) {
	for _, t := range JobTypes {
		if strings.EqualFold(t, strings.TrimSpace(jobType)) {
			return t, true
		}
	}
	return "", false
}

type JobPosting struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	SalaryRange string `json:"salaryRange"`
	Type        string `json:"type"`
	Description string `json:"description"`
	PosterID    string `json:"posterId"`
	CreatedAt   int64  `json:"createdAt"` // ms since epoch
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "Pending"
	ApplicationReviewed  ApplicationStatus = "Reviewed"
	ApplicationInterview ApplicationStatus = "Interview"
	ApplicationRejected  ApplicationStatus = "Rejected"
)

// applicationTransitions lists where each status may move next. Rejected is
// final.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:   {ApplicationReviewed, ApplicationInterview, ApplicationRejected},
	ApplicationReviewed:  {ApplicationInterview, ApplicationRejected},
	ApplicationInterview: {ApplicationRejected},
}

var ApplicationStatuses = []ApplicationStatus{
	ApplicationPending,
	ApplicationReviewed,
	ApplicationInterview,
	ApplicationRejected,
}

func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	for _, status := range ApplicationStatuses {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}
	return "", false
}

func (s ApplicationStatus) CanMoveTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// JobApplication keeps a snapshot of the posting and the applicant taken when
// the application was sent.
type JobApplication struct {
	ID            string            `json:"id"`
	JobID         string            `json:"jobId"`
	JobTitle      string            `json:"jobTitle"`
	Company       string            `json:"company"`
	PosterID      string            `json:"posterId"`
	ApplicantID   string            `json:"applicantId"`
	ApplicantName string            `json:"applicantName"`
	Email         string            `json:"email"`
	CoverLetter   string            `json:"coverLetter,omitempty"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     int64             `json:"appliedAt"` // ms since epoch
}
