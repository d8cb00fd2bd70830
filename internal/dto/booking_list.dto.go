package dto

type BookingListDTO struct {
	ID              uint   `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
	ServiceName     string `json:"service_name"`
}

type SlotsDTO struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type BookingCreatedDTO struct {
	BookingID uint   `json:"booking_id"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}
