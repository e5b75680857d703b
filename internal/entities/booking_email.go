package entities

type BookingEmailData struct {
	BookerName         string
	SlotID             string
	StartTimeFormatted string
	Description        string
	CurrentYear        int
}
