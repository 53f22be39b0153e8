package fiber

// TrackRequest represents a usage event report
// @Description Usage event DTO
type TrackRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	SessionID   string `json:"sessionId"`
	GameID      string `json:"gameId"`
}

type TrackStats struct {
	Total     int64 `json:"total"`
	Today     int64 `json:"today"`
	Online    int   `json:"online"`
	Unique    int   `json:"unique"`
	YourTotal int64 `json:"yourTotal"`
}

type TrackResponse struct {
	Success   bool       `json:"success"`
	Stats     TrackStats `json:"stats"`
	Timestamp int64      `json:"timestamp"`
}

type SummaryResponse struct {
	Total      int64 `json:"total"`
	Today      int64 `json:"today"`
	Online     int   `json:"online"`
	Unique     int   `json:"unique"`
	PeakOnline int   `json:"peakOnline"`
	PeakToday  int64 `json:"peakToday"`
	LastUpdate int64 `json:"lastUpdate"`
}

type HourPointResponse struct {
	Hour  string `json:"hour"`
	Count int64  `json:"count"`
}

type DayPointResponse struct {
	Date        string `json:"date"`
	Count       int64  `json:"count"`
	UniqueUsers int    `json:"uniqueUsers"`
}

type DetailedSummary struct {
	Total         int64  `json:"total"`
	Today         int64  `json:"today"`
	Online        int    `json:"online"`
	Unique        int    `json:"unique"`
	PeakOnline    int    `json:"peakOnline"`
	PeakToday     int64  `json:"peakToday"`
	RequestsCount int64  `json:"requestsCount"`
	LastResetDate string `json:"lastResetDate"`
}

type DetailedResponse struct {
	Summary     DetailedSummary     `json:"summary"`
	Hourly      []HourPointResponse `json:"hourly"`
	Daily       []DayPointResponse  `json:"daily"`
	CurrentHour HourPointResponse   `json:"currentHour"`
	LastUpdate  int64               `json:"lastUpdate"`
}

type HeartbeatRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

type HeartbeatResponse struct {
	Success bool   `json:"success"`
	Online  int    `json:"online"`
	Message string `json:"message,omitempty"`
}

type NotFoundResponse struct {
	Error  string   `json:"error" example:"route_not_found"`
	Routes []string `json:"routes"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message" example:"Request payload is invalid"`
}
