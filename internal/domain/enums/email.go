package enums

type EmailState string

const (
	EmailStateEnqueued EmailState = "enqueued"
	EmailStateApproved EmailState = "approved"
	EmailStateRejected EmailState = "rejected"
)

type EmailEventType string

const (
	EmailEventCreated  EmailEventType = "created"
	EmailEventApproved EmailEventType = "approved"
	EmailEventRejected EmailEventType = "rejected"
	EmailEventSent     EmailEventType = "sent"
)
