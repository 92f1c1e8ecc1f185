package event_bus

const (
	ScheduleEventCreatedType EventType = "schedule.event.created"
	ScheduleEventDeletedType EventType = "schedule.event.deleted"
	ScheduleImportedType     EventType = "schedule.imported"
)

type ScheduleEventCreated struct {
	ID    string
	Date  string
	Title string
}

type ScheduleEventDeleted struct {
	ID   string
	Date string
}

type ScheduleImported struct {
	Strategy string
	Detected int
	Added    int
}
