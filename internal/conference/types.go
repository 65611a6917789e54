package conference

// Event is the conference itself.
type Event struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Timezone    string `json:"timezone"`
	Domain      string `json:"domain"`
	Twitter     string `json:"twitter"`
	Facebook    string `json:"facebook"`
	LinkedIn    string `json:"linkedin"`
	YouTube     string `json:"youtube"`
	Instagram   string `json:"instagram"`
	Website     string `json:"website"`
}

// Hotel is a partner hotel.
type Hotel struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Website string `json:"website"`
}

// Track is a session track.
type Track struct {
	Name string `json:"name"`
}

// Venue is the conference site.
type Venue struct {
	Name      string  `json:"name"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zipcode   *string `json:"zipcode"`
	Country   *string `json:"country"`
}

// SessionSpeaker is a speaker as listed on a session.
type SessionSpeaker struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// Session is a scheduled session with its joins resolved.
type Session struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	StartTime   *string          `json:"start_time"`
	Duration    int              `json:"duration"`
	Track       string           `json:"track"`
	Venue       string           `json:"venue"`
	Speakers    []SessionSpeaker `json:"speakers"`
}

// SpeakerSession is a session as listed on a speaker. It has no speaker
// list of its own.
type SpeakerSession struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	StartTime   string `json:"start_time"`
	Duration    int    `json:"duration"`
	Track       string `json:"track"`
	Venue       string `json:"venue"`
}

// Speaker is a speaker profile with their sessions.
type Speaker struct {
	Name        string           `json:"name"`
	LastName    string           `json:"last_name"`
	Company     *string          `json:"company"`
	Designation *string          `json:"designation"`
	Twitter     *string          `json:"twitter"`
	LinkedIn    *string          `json:"linkedin"`
	Description *string          `json:"description"`
	Sessions    []SpeakerSession `json:"sessions"`
}
