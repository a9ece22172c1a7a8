package models

// VhcSeverity is the severity colour of an inspected concern.
type VhcSeverity string

const (
	VhcSeverityRed   VhcSeverity = "red"
	VhcSeverityAmber VhcSeverity = "amber"
	VhcSeverityGreen VhcSeverity = "green"
	VhcSeverityGrey  VhcSeverity = "grey"
)

// VhcApprovalStatus is the customer decision workflow state of a concern.
// Completed behaves as a sub-state of Authorized for propagation purposes.
type VhcApprovalStatus string

const (
	VhcApprovalPending    VhcApprovalStatus = "pending"
	VhcApprovalAuthorized VhcApprovalStatus = "authorized"
	VhcApprovalDeclined   VhcApprovalStatus = "declined"
	VhcApprovalCompleted  VhcApprovalStatus = "completed"
)

// IsAuthorized reports whether the status propagates as an approval.
func (s VhcApprovalStatus) IsAuthorized() bool {
	return s == VhcApprovalAuthorized || s == VhcApprovalCompleted
}

// JobRequestSource tags where a billable work item came from.
// Engine-owned rows always carry JobRequestSourceVhcAuthorized; the
// one-row-per-item invariant is scoped to that marker.
type JobRequestSource string

const (
	JobRequestSourceManual        JobRequestSource = "MANUAL"
	JobRequestSourceVhcAuthorized JobRequestSource = "VHC_AUTH"
)

type JobRequestStatus string

const (
	JobRequestStatusRequested  JobRequestStatus = "requested"
	JobRequestStatusInProgress JobRequestStatus = "in_progress"
	JobRequestStatusDone       JobRequestStatus = "done"
)

type RectificationStatus string

const (
	RectificationStatusWaiting   RectificationStatus = "waiting"
	RectificationStatusStarted   RectificationStatus = "started"
	RectificationStatusCompleted RectificationStatus = "completed"
)

// VhcCategory is the closed set of customer-facing work categories.
type VhcCategory string

const (
	VhcCategoryBrakesHubs     VhcCategory = "Brakes & Hubs"
	VhcCategoryTyresWheels    VhcCategory = "Tyres & Wheels"
	VhcCategorySuspension     VhcCategory = "Steering & Suspension"
	VhcCategoryExhaust        VhcCategory = "Exhaust & Emissions"
	VhcCategoryElectrical     VhcCategory = "Electrical & Lighting"
	VhcCategoryServiceItems   VhcCategory = "Service Items"
	VhcCategoryBodywork       VhcCategory = "Bodywork & Glass"
	VhcCategoryAdditionalWork VhcCategory = "Additional Work"
	VhcCategoryGeneral        VhcCategory = "General"
)

type JobStatus string

const (
	JobStatusOpen     JobStatus = "open"
	JobStatusWorkshop JobStatus = "workshop"
	JobStatusInvoiced JobStatus = "invoiced"
	JobStatusClosed   JobStatus = "closed"
)
